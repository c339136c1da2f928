package api

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
)

// CookieStore persists session cookies between process runs.
type CookieStore interface {
	LoadCookies() ([]*http.Cookie, error)
	SaveCookies(cookies []*http.Cookie) error
}

// NewMemoryJar returns a public-suffix aware in-memory jar.
func NewMemoryJar() (*cookiejar.Jar, error) {
	return cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
}

// PersistentJar is a cookie jar for a single API origin that mirrors every
// cookie it accepts into a CookieStore.
type PersistentJar struct {
	mu     sync.Mutex
	origin *url.URL
	inner  *cookiejar.Jar
	store  CookieStore
	saved  map[string]*http.Cookie
	now    func() time.Time
}

// NewPersistentJar loads previously saved cookies for origin from store.
func NewPersistentJar(origin *url.URL, store CookieStore) (*PersistentJar, error) {
	inner, err := NewMemoryJar()
	if err != nil {
		return nil, err
	}
	j := &PersistentJar{
		origin: origin,
		inner:  inner,
		store:  store,
		saved:  make(map[string]*http.Cookie),
		now:    time.Now,
	}
	if store == nil {
		return j, nil
	}
	cookies, err := store.LoadCookies()
	if err != nil {
		return nil, err
	}
	live := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		if c == nil || j.expired(c) {
			continue
		}
		j.saved[c.Name] = c
		live = append(live, c)
	}
	if len(live) > 0 {
		inner.SetCookies(origin, live)
	}
	return j, nil
}

func (j *PersistentJar) expired(c *http.Cookie) bool {
	if c.MaxAge < 0 {
		return true
	}
	return !c.Expires.IsZero() && c.Expires.Before(j.now())
}

// SetCookies implements http.CookieJar.
func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.inner.SetCookies(u, cookies)
	if u.Hostname() != j.origin.Hostname() {
		return
	}
	for _, c := range cookies {
		if j.expired(c) {
			delete(j.saved, c.Name)
			continue
		}
		cp := *c
		if cp.Expires.IsZero() && cp.MaxAge > 0 {
			cp.Expires = j.now().Add(time.Duration(cp.MaxAge) * time.Second)
			cp.MaxAge = 0
		}
		j.saved[c.Name] = &cp
	}
	j.persistLocked()
}

// Cookies implements http.CookieJar.
func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner.Cookies(u)
}

// Clear forgets every cookie, in memory and on disk.
func (j *PersistentJar) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	inner, err := NewMemoryJar()
	if err != nil {
		return err
	}
	j.inner = inner
	j.saved = make(map[string]*http.Cookie)
	if j.store == nil {
		return nil
	}
	return j.store.SaveCookies(nil)
}

func (j *PersistentJar) persistLocked() {
	if j.store == nil {
		return
	}
	list := make([]*http.Cookie, 0, len(j.saved))
	for _, c := range j.saved {
		list = append(list, c)
	}
	// A failed write only costs the next run its session.
	_ = j.store.SaveCookies(list)
}
