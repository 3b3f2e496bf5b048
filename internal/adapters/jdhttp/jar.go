package jdhttp

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/bnema/seckill-cli/internal/domain"
)

// Jar is a cookie jar that remembers enough about every cookie it accepts to
// rebuild itself in another process. The standard jar hides domain and expiry
// once a cookie is stored, so the records are kept alongside it.
type Jar struct {
	inner *cookiejar.Jar
	now   func() time.Time

	mu      sync.Mutex
	records map[recordKey]domain.Cookie
}

type recordKey struct {
	domain string
	path   string
	name   string
}

var _ http.CookieJar = (*Jar)(nil)

func NewJar(now func() time.Time) (*Jar, error) {
	inner, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}

	return &Jar{inner: inner, now: now, records: make(map[recordKey]domain.Cookie)}, nil
}

func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)

	now := j.now()
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, c := range cookies {
		record := recordFor(u, c, now)
		key := recordKey{domain: record.Domain, path: record.Path, name: record.Name}
		if c.MaxAge < 0 || record.Expired(now) {
			delete(j.records, key)
			continue
		}
		j.records[key] = record
	}
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

// Value returns the value of the named cookie as it would be sent to u.
func (j *Jar) Value(u *url.URL, name string) string {
	for _, c := range j.inner.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// Snapshot returns every live cookie in a stable order.
func (j *Jar) Snapshot() []domain.Cookie {
	now := j.now()
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]domain.Cookie, 0, len(j.records))
	for key, record := range j.records {
		if record.Expired(now) {
			delete(j.records, key)
			continue
		}
		out = append(out, record)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Domain != out[b].Domain {
			return out[a].Domain < out[b].Domain
		}
		if out[a].Path != out[b].Path {
			return out[a].Path < out[b].Path
		}
		return out[a].Name < out[b].Name
	})
	return out
}

// Restore feeds persisted cookies back through the jar as if the origin host
// had just set them.
func (j *Jar) Restore(cookies []domain.Cookie) {
	now := j.now()
	for _, c := range cookies {
		if c.Expired(now) || c.Domain == "" {
			continue
		}
		scheme := "http"
		if c.Secure {
			scheme = "https"
		}
		origin := &url.URL{Scheme: scheme, Host: c.Domain, Path: c.Path}
		hc := &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		}
		if !c.HostOnly {
			hc.Domain = c.Domain
		}
		j.SetCookies(origin, []*http.Cookie{hc})
	}
}

func recordFor(u *url.URL, c *http.Cookie, now time.Time) domain.Cookie {
	record := domain.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		Secure:   c.Secure,
		HTTPOnly: c.HttpOnly,
	}

	host := strings.ToLower(u.Hostname())
	cookieDomain := strings.ToLower(strings.TrimPrefix(c.Domain, "."))
	if cookieDomain == "" || cookieDomain == host {
		record.Domain = host
		record.HostOnly = cookieDomain == ""
	} else {
		record.Domain = cookieDomain
	}

	if record.Path == "" || !strings.HasPrefix(record.Path, "/") {
		record.Path = defaultPath(u.Path)
	}

	switch {
	case c.MaxAge > 0:
		record.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
	case !c.Expires.IsZero():
		record.Expires = c.Expires
	}

	return record
}

// defaultPath follows RFC 6265 section 5.1.4.
func defaultPath(p string) string {
	if p == "" || p[0] != '/' {
		return "/"
	}
	return path.Dir(p)
}
