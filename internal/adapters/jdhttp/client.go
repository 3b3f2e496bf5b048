// Package jdhttp talks to the shop's passport, item and flash-sale hosts.
// One Client carries one cookie jar and one browser identity; every worker of
// a run shares it.
package jdhttp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bnema/seckill-cli/internal/domain"
	"github.com/bnema/seckill-cli/internal/ports"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_13_3) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/87.0.4280.88 Safari/537.36"

	defaultRequestTimeout = 10 * time.Second
	maxResponseBytes      = 4 << 20
)

// Hosts are the base URLs of the remote services. Tests point all of them at
// one httptest server.
type Hosts struct {
	Passport string `mapstructure:"passport"`
	QR       string `mapstructure:"qr"`
	Order    string `mapstructure:"order"`
	Item     string `mapstructure:"item"`
	ItemKO   string `mapstructure:"itemko"`
	Marathon string `mapstructure:"marathon"`
	Yushou   string `mapstructure:"yushou"`
}

func DefaultHosts() Hosts {
	return Hosts{
		Passport: "https://passport.jd.com",
		QR:       "https://qr.m.jd.com",
		Order:    "https://order.jd.com",
		Item:     "https://item.jd.com",
		ItemKO:   "https://itemko.jd.com",
		Marathon: "https://marathon.jd.com",
		Yushou:   "https://yushou.jd.com",
	}
}

type Options struct {
	Hosts          Hosts
	UserAgent      string
	RequestTimeout time.Duration
	Transport      http.RoundTripper
	Now            func() time.Time
}

type Client struct {
	hosts          Hosts
	requestTimeout time.Duration
	now            func() time.Time

	jar        *Jar
	follow     *http.Client
	noRedirect *http.Client

	mu        sync.RWMutex
	userAgent string
}

var (
	_ ports.AuthEndpoints        = (*Client)(nil)
	_ ports.OrderEndpoints       = (*Client)(nil)
	_ ports.AcquisitionEndpoints = (*Client)(nil)
	_ ports.SessionTransport     = (*Client)(nil)
)

func New(opts Options) (*Client, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	jar, err := NewJar(now)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Client{
		hosts:          withDefaults(opts.Hosts),
		requestTimeout: timeout,
		now:            now,
		jar:            jar,
		follow:         &http.Client{Jar: jar, Transport: transport},
		noRedirect: &http.Client{
			Jar:       jar,
			Transport: transport,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent: userAgent,
	}, nil
}

func withDefaults(h Hosts) Hosts {
	d := DefaultHosts()
	pick := func(v, fallback string) string {
		v = strings.TrimRight(strings.TrimSpace(v), "/")
		if v == "" {
			return fallback
		}
		return v
	}
	return Hosts{
		Passport: pick(h.Passport, d.Passport),
		QR:       pick(h.QR, d.QR),
		Order:    pick(h.Order, d.Order),
		Item:     pick(h.Item, d.Item),
		ItemKO:   pick(h.ItemKO, d.ItemKO),
		Marathon: pick(h.Marathon, d.Marathon),
		Yushou:   pick(h.Yushou, d.Yushou),
	}
}

func (c *Client) ExportSession() domain.Session {
	c.mu.RLock()
	userAgent := c.userAgent
	c.mu.RUnlock()

	return domain.Session{
		Cookies:   c.jar.Snapshot(),
		UserAgent: userAgent,
		SavedAt:   c.now(),
	}
}

func (c *Client) ImportSession(session domain.Session) {
	c.jar.Restore(session.Cookies)
	if session.UserAgent == "" {
		return
	}
	c.mu.Lock()
	c.userAgent = session.UserAgent
	c.mu.Unlock()
}

type request struct {
	method   string
	endpoint string
	query    url.Values
	form     url.Values
	referer  string
	redirect bool
}

type response struct {
	status      int
	contentType string
	body        []byte
}

func (c *Client) do(ctx context.Context, r request) (response, error) {
	target, err := url.Parse(r.endpoint)
	if err != nil {
		return response{}, fmt.Errorf("parse endpoint %q: %w", r.endpoint, err)
	}
	if len(r.query) > 0 {
		q := target.Query()
		for k, vs := range r.query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		target.RawQuery = q.Encode()
	}

	var body io.Reader
	if r.form != nil {
		body = strings.NewReader(r.form.Encode())
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, r.method, target.String(), body)
	if err != nil {
		return response{}, fmt.Errorf("create %s request: %w", target.Path, err)
	}

	c.mu.RLock()
	req.Header.Set("User-Agent", c.userAgent)
	c.mu.RUnlock()
	if r.referer != "" {
		req.Header.Set("Referer", r.referer)
	}
	if r.form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	httpClient := c.noRedirect
	if r.redirect {
		httpClient = c.follow
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("request %s: %w", target.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return response{}, fmt.Errorf("read %s response: %w", target.Path, err)
	}

	return response{
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		body:        raw,
	}, nil
}

func (c *Client) millis() string {
	return strconv.FormatInt(c.now().UnixMilli(), 10)
}

func (c *Client) itemPage(sku domain.SKU) string {
	return fmt.Sprintf("%s/%s.html", c.hosts.Item, sku)
}

func (c *Client) seckillPage(item domain.Item) string {
	return fmt.Sprintf("%s/seckill/seckill.action?skuId=%s&num=%d&rid=%d",
		c.hosts.Marathon, url.QueryEscape(string(item.SKU)), item.Quantity, c.now().Unix())
}

func jsonpCallback() string {
	return "jQuery" + strconv.Itoa(1000000+rand.IntN(9000000))
}

// absolute turns a scheme-relative link into an absolute one using the scheme
// of base.
func absolute(link string, base string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", errors.New("empty link")
	}
	if strings.HasPrefix(link, "//") {
		scheme := "https"
		if u, err := url.Parse(base); err == nil && u.Scheme != "" {
			scheme = u.Scheme
		}
		link = scheme + ":" + link
	}
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse link %q: %w", link, err)
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("link %q is not absolute", link)
	}
	return u.String(), nil
}
