package domain

import "time"

// Cookie is the persisted form of one transport cookie.
type Cookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Domain   string    `json:"domain"`
	Path     string    `json:"path"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HTTPOnly bool      `json:"http_only,omitempty"`
	// HostOnly cookies are only sent back to Domain itself, never to subdomains.
	HostOnly bool `json:"host_only,omitempty"`
}

func (c Cookie) Expired(now time.Time) bool {
	return !c.Expires.IsZero() && !c.Expires.After(now)
}

// Session is the transport-level credential bag shared by every worker.
type Session struct {
	Cookies   []Cookie  `json:"cookies"`
	UserAgent string    `json:"user_agent"`
	SavedAt   time.Time `json:"saved_at"`
}

func (s Session) Empty() bool {
	return len(s.Cookies) == 0
}

// Live returns a copy of the session without expired cookies.
func (s Session) Live(now time.Time) Session {
	live := make([]Cookie, 0, len(s.Cookies))
	for _, cookie := range s.Cookies {
		if cookie.Expired(now) {
			continue
		}
		live = append(live, cookie)
	}
	s.Cookies = live
	return s
}
