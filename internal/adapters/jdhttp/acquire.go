package jdhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bnema/seckill-cli/internal/classify"
	"github.com/bnema/seckill-cli/internal/domain"
)

var purchaseURLRewriter = strings.NewReplacer("divide", "marathon", "user_routing", "captcha.html")

// ResolvePurchaseURL asks the item gate for the routing link of the sale and
// rewrites it to the captcha landing page the flash-sale host serves.
func (c *Client) ResolvePurchaseURL(ctx context.Context, sku domain.SKU) (string, error) {
	resp, err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: c.hosts.ItemKO + "/itemShowBtn",
		query: url.Values{
			"callback": {jsonpCallback()},
			"skuId":    {string(sku)},
			"from":     {"pc"},
			"_":        {c.millis()},
		},
		referer:  c.itemPage(sku),
		redirect: true,
	})
	if err != nil {
		return "", err
	}

	payload, err := classify.Parse(string(resp.body))
	if err != nil {
		return "", err
	}
	link := payload.String("url")
	if link == "" {
		return "", domain.ErrPurchaseURLUnavailable
	}

	routed, err := absolute(link, c.hosts.ItemKO)
	if err != nil {
		return "", err
	}
	return purchaseURLRewriter.Replace(routed), nil
}

func (c *Client) Warmup(ctx context.Context, purchaseURL string, sku domain.SKU) error {
	if purchaseURL == "" {
		return errors.New("warmup: empty purchase url")
	}
	_, err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: purchaseURL,
		referer:  c.itemPage(sku),
	})
	return err
}

// Checkout registers the item and quantity with the flash-sale host. The
// response carries nothing the next step needs.
func (c *Client) Checkout(ctx context.Context, item domain.Item) error {
	_, err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: c.hosts.Marathon + "/seckill/seckill.action",
		query: url.Values{
			"skuId": {string(item.SKU)},
			"num":   {strconv.Itoa(item.Quantity)},
			"rid":   {strconv.FormatInt(c.now().Unix(), 10)},
		},
		referer: c.itemPage(item.SKU),
	})
	return err
}

func (c *Client) Submit(ctx context.Context, template domain.OrderTemplate) (domain.Outcome, error) {
	resp, err := c.do(ctx, request{
		method:   http.MethodPost,
		endpoint: c.hosts.Marathon + "/seckillnew/orderService/pc/submitOrder.action",
		query:    url.Values{"skuId": {string(template.Item.SKU)}},
		form:     OrderForm(template),
		referer:  c.seckillPage(template.Item),
		redirect: true,
	})
	if err != nil {
		return domain.Outcome{}, err
	}
	if resp.status >= http.StatusInternalServerError {
		return domain.Transient(fmt.Sprintf("submit: status %d", resp.status), string(resp.body)), nil
	}

	return classify.Submit(string(resp.body)), nil
}

// OrderForm encodes a frozen template as the submission form.
func OrderForm(t domain.OrderTemplate) url.Values {
	invoice := "false"
	if t.WithInvoice {
		invoice = "true"
	}

	return url.Values{
		"skuId":              {string(t.Item.SKU)},
		"num":                {strconv.Itoa(t.Item.Quantity)},
		"addressId":          {t.Address.ID},
		"yuShou":             {"true"},
		"isModifyAddress":    {"false"},
		"name":               {t.Address.Name},
		"provinceId":         {t.Address.ProvinceID},
		"cityId":             {t.Address.CityID},
		"countyId":           {t.Address.CountyID},
		"townId":             {t.Address.TownID},
		"addressDetail":      {t.Address.Detail},
		"mobile":             {t.Address.Mobile},
		"mobileKey":          {t.Address.MobileKey},
		"email":              {t.Address.Email},
		"postCode":           {""},
		"invoiceTitle":       {t.Invoice.Title},
		"invoiceCompanyName": {""},
		"invoiceContent":     {t.Invoice.ContentType},
		"invoiceTaxpayerNO":  {""},
		"invoiceEmail":       {""},
		"invoicePhone":       {t.Invoice.Phone},
		"invoicePhoneKey":    {t.Invoice.PhoneKey},
		"invoice":            {invoice},
		"password":           {t.Buyer.PaymentPassword},
		"codTimeType":        {t.CODTimeType},
		"paymentType":        {t.PaymentType},
		"areaCode":           {""},
		"overseas":           {"0"},
		"phone":              {""},
		"eid":                {t.Buyer.EID},
		"fp":                 {t.Buyer.FP},
		"token":              {t.Token},
		"pru":                {""},
	}
}
