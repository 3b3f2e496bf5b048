package domain

import (
	"fmt"
	"strings"
)

type Address struct {
	ID         string
	Name       string
	ProvinceID string
	CityID     string
	CountyID   string
	TownID     string
	Detail     string
	Mobile     string
	MobileKey  string
	Email      string
}

type Invoice struct {
	Title       string
	ContentType string
	Phone       string
	PhoneKey    string
}

// OrderContext is the buyer context returned by the remote before the gate opens.
type OrderContext struct {
	Addresses []Address
	// Invoice is nil when the account has no invoice preference.
	Invoice *Invoice
	Token   string
}

// Fixed order options the remote expects for a flash-sale submission.
const (
	PaymentTypeOnline = "4"
	CODTimeTypeAny    = "3"
)

const (
	defaultInvoiceTitle       = "-1"
	defaultInvoiceContentType = "1"
)

// OrderTemplate is the frozen submission payload shared read-only by all
// workers. It holds no slices or maps, so every copy is independent.
type OrderTemplate struct {
	Item        Item
	Address     Address
	Invoice     Invoice
	WithInvoice bool
	PaymentType string
	CODTimeType string
	Token       string
	Buyer       BuyerCredentials
}

// NewOrderTemplate freezes a resolved order context. The first address is
// used for shipping. Missing addresses or token never yield a template.
func NewOrderTemplate(item Item, buyer BuyerCredentials, ctx OrderContext) (OrderTemplate, error) {
	if err := item.Validate(); err != nil {
		return OrderTemplate{}, err
	}
	if len(ctx.Addresses) == 0 {
		return OrderTemplate{}, ErrNoShippingAddress
	}
	token := strings.TrimSpace(ctx.Token)
	if token == "" {
		return OrderTemplate{}, ErrMissingOrderToken
	}

	address := ctx.Addresses[0]
	if strings.TrimSpace(address.ID) == "" {
		return OrderTemplate{}, fmt.Errorf("%w: first address has no id", ErrNoShippingAddress)
	}

	invoice := Invoice{Title: defaultInvoiceTitle, ContentType: defaultInvoiceContentType}
	if ctx.Invoice != nil {
		invoice = *ctx.Invoice
		if invoice.Title == "" {
			invoice.Title = defaultInvoiceTitle
		}
		if invoice.ContentType == "" {
			invoice.ContentType = defaultInvoiceContentType
		}
	}

	return OrderTemplate{
		Item:        item,
		Address:     address,
		Invoice:     invoice,
		WithInvoice: ctx.Invoice != nil,
		PaymentType: PaymentTypeOnline,
		CODTimeType: CODTimeTypeAny,
		Token:       token,
		Buyer:       buyer,
	}, nil
}

// MaskedMobile hides the middle digits of the shipping phone number.
func (t OrderTemplate) MaskedMobile() string {
	return maskMiddle(t.Address.Mobile)
}

func maskMiddle(value string) string {
	runes := []rune(value)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	keep := len(runes) / 4
	if keep == 0 {
		keep = 1
	}
	for i := keep; i < len(runes)-keep; i++ {
		runes[i] = '*'
	}
	return string(runes)
}
