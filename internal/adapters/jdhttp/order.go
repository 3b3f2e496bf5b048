package jdhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bnema/seckill-cli/internal/classify"
	"github.com/bnema/seckill-cli/internal/domain"
)

// Reserve books the pre-sale appointment. The appointment endpoint answers
// with a link to an HTML page whose result block is returned verbatim.
func (c *Client) Reserve(ctx context.Context, sku domain.SKU) (string, error) {
	resp, err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: c.hosts.Yushou + "/youshouinfo.action",
		query:    url.Values{"callback": {"fetchJSON"}, "sku": {string(sku)}, "_": {c.millis()}},
		referer:  c.itemPage(sku),
		redirect: true,
	})
	if err != nil {
		return "", err
	}

	payload, err := classify.Parse(string(resp.body))
	if err != nil {
		return "", fmt.Errorf("reservation info: %w", err)
	}
	link, err := absolute(payload.String("url"), c.hosts.Yushou)
	if err != nil {
		return "", fmt.Errorf("reservation info: %w", err)
	}

	page, err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: link,
		referer:  c.itemPage(sku),
		redirect: true,
	})
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.body))
	if err != nil {
		return "", fmt.Errorf("parse reservation page: %w", err)
	}
	result := strings.TrimSpace(doc.Find(".bd-right-result").First().Text())
	if result == "" {
		return "", errors.New("reservation page has no result block")
	}

	return result, nil
}

// looseString accepts a JSON string, number or null. The order context mixes
// numeric and string identifiers between accounts.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("want string or number, got %s", data)
		}
		*s = looseString(n.String())
	}
	return nil
}

type orderContextPayload struct {
	AddressList []addressPayload `json:"addressList"`
	InvoiceInfo *invoicePayload  `json:"invoiceInfo"`
	Token       looseString      `json:"token"`
}

type addressPayload struct {
	ID            looseString `json:"id"`
	Name          looseString `json:"name"`
	ProvinceID    looseString `json:"provinceId"`
	CityID        looseString `json:"cityId"`
	CountyID      looseString `json:"countyId"`
	TownID        looseString `json:"townId"`
	AddressDetail looseString `json:"addressDetail"`
	Mobile        looseString `json:"mobile"`
	MobileKey     looseString `json:"mobileKey"`
	Email         looseString `json:"email"`
}

type invoicePayload struct {
	InvoiceTitle       looseString `json:"invoiceTitle"`
	InvoiceContentType looseString `json:"invoiceContentType"`
	InvoicePhone       looseString `json:"invoicePhone"`
	InvoicePhoneKey    looseString `json:"invoicePhoneKey"`
}

// FetchOrderContext asks the flash-sale host for the buyer's addresses,
// invoice preference and submission token. The body is plain JSON and is
// decoded strictly; the literal null means the item is not open to this
// account.
func (c *Client) FetchOrderContext(ctx context.Context, item domain.Item) (domain.OrderContext, error) {
	resp, err := c.do(ctx, request{
		method:   http.MethodPost,
		endpoint: c.hosts.Marathon + "/seckillnew/orderService/pc/init.action",
		form: url.Values{
			"sku":             {string(item.SKU)},
			"num":             {strconv.Itoa(item.Quantity)},
			"isModifyAddress": {"false"},
		},
		referer:  c.seckillPage(item),
		redirect: true,
	})
	if err != nil {
		return domain.OrderContext{}, err
	}

	text := strings.TrimSpace(string(resp.body))
	if text == "null" {
		return domain.OrderContext{}, domain.ErrOrderContextNull
	}

	var payload orderContextPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return domain.OrderContext{}, &classify.ParseError{Raw: text, Err: err}
	}

	return payload.toDomain(), nil
}

func (p orderContextPayload) toDomain() domain.OrderContext {
	out := domain.OrderContext{Token: string(p.Token)}
	for _, a := range p.AddressList {
		out.Addresses = append(out.Addresses, domain.Address{
			ID:         string(a.ID),
			Name:       string(a.Name),
			ProvinceID: string(a.ProvinceID),
			CityID:     string(a.CityID),
			CountyID:   string(a.CountyID),
			TownID:     string(a.TownID),
			Detail:     string(a.AddressDetail),
			Mobile:     string(a.Mobile),
			MobileKey:  string(a.MobileKey),
			Email:      string(a.Email),
		})
	}
	if p.InvoiceInfo != nil {
		out.Invoice = &domain.Invoice{
			Title:       string(p.InvoiceInfo.InvoiceTitle),
			ContentType: string(p.InvoiceInfo.InvoiceContentType),
			Phone:       string(p.InvoiceInfo.InvoicePhone),
			PhoneKey:    string(p.InvoiceInfo.InvoicePhoneKey),
		}
	}
	return out
}
