package domain

import (
	"fmt"
	"strings"
)

type SKU string

// Item is the purchase target of a run.
type Item struct {
	SKU      SKU
	Quantity int
}

func (i Item) Validate() error {
	if strings.TrimSpace(string(i.SKU)) == "" {
		return fmt.Errorf("item sku is required")
	}
	if i.Quantity <= 0 {
		return fmt.Errorf("item quantity must be positive, got %d", i.Quantity)
	}

	return nil
}

// BuyerCredentials are opaque operator inputs forwarded with the order.
type BuyerCredentials struct {
	PaymentPassword string
	EID             string
	FP              string
}

func (b BuyerCredentials) Validate() error {
	if b.PaymentPassword == "" {
		return fmt.Errorf("payment password is required")
	}
	if strings.TrimSpace(b.EID) == "" {
		return fmt.Errorf("eid is required")
	}
	if strings.TrimSpace(b.FP) == "" {
		return fmt.Errorf("fp is required")
	}

	return nil
}
