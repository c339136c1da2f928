package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// Collection names a cached snapshot.
type Collection string

const (
	CollectionUser     Collection = "user"
	CollectionJournals Collection = "journals"
	CollectionFolders  Collection = "folders"
	CollectionQuests   Collection = "quests"
)

const (
	snapshotBucket = "snapshots"
	sessionBucket  = "session"
	cookiesFile    = "cookies"
)

// ErrNoSnapshot is returned when nothing was saved for a collection.
var ErrNoSnapshot = errors.New("store: no snapshot")

// Persistence keeps the session cookie and the last fetched copy of each
// collection on disk. The API stays the authority; snapshots only serve
// offline listing and cross-process refresh.
type Persistence interface {
	LoadCookies() ([]*http.Cookie, error)
	SaveCookies(cookies []*http.Cookie) error

	SaveSnapshot(c Collection, v interface{}) error
	LoadSnapshot(c Collection, v interface{}) (time.Time, error)
	Clear() error

	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
		FilePerm:          0o600,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	now      func() time.Time
}

type snapshot struct {
	SavedAt time.Time       `json:"saved_at"`
	Items   json.RawMessage `json:"items"`
}

type cookieRecord struct {
	Name     string        `json:"name"`
	Value    string        `json:"value"`
	Path     string        `json:"path,omitempty"`
	Domain   string        `json:"domain,omitempty"`
	Expires  time.Time     `json:"expires,omitempty"`
	Secure   bool          `json:"secure,omitempty"`
	HttpOnly bool          `json:"http_only,omitempty"`
	SameSite http.SameSite `json:"same_site,omitempty"`
}

func (p *persistence) clock() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}

func (p *persistence) LoadCookies() ([]*http.Cookie, error) {
	key := toKey(sessionBucket, cookiesFile)
	if !p.d.Has(key) {
		return nil, nil
	}
	data, err := p.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("store: read cookies: %w", err)
	}
	var records []cookieRecord
	if err := json.Unmarshal(data, &records); err != nil {
		// A corrupt jar is the same as no session.
		fmt.Fprintf(os.Stderr, "store: discard cookies: %v\n", err)
		return nil, nil
	}
	cookies := make([]*http.Cookie, 0, len(records))
	for _, r := range records {
		cookies = append(cookies, &http.Cookie{
			Name:     r.Name,
			Value:    r.Value,
			Path:     r.Path,
			Domain:   r.Domain,
			Expires:  r.Expires,
			Secure:   r.Secure,
			HttpOnly: r.HttpOnly,
			SameSite: r.SameSite,
		})
	}
	return cookies, nil
}

func (p *persistence) SaveCookies(cookies []*http.Cookie) error {
	key := toKey(sessionBucket, cookiesFile)
	if len(cookies) == 0 {
		if p.d.Has(key) {
			return p.d.Erase(key)
		}
		return nil
	}
	records := make([]cookieRecord, 0, len(cookies))
	for _, c := range cookies {
		if c == nil {
			continue
		}
		records = append(records, cookieRecord{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
			SameSite: c.SameSite,
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return p.d.Write(key, data)
}

// SaveSnapshot stores v as the latest copy of collection c.
func (p *persistence) SaveSnapshot(c Collection, v interface{}) error {
	items, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", c, err)
	}
	data, err := json.Marshal(snapshot{SavedAt: p.clock().UTC(), Items: items})
	if err != nil {
		return err
	}
	if err := p.d.Write(toKey(snapshotBucket, string(c)), data); err != nil {
		return fmt.Errorf("store: write %s: %w", c, err)
	}
	return nil
}

// LoadSnapshot decodes the saved copy of c into v and returns when it was
// saved. It returns ErrNoSnapshot when nothing was saved.
func (p *persistence) LoadSnapshot(c Collection, v interface{}) (time.Time, error) {
	key := toKey(snapshotBucket, string(c))
	if !p.d.Has(key) {
		return time.Time{}, ErrNoSnapshot
	}
	data, err := p.d.Read(key)
	if err != nil {
		return time.Time{}, fmt.Errorf("store: read %s: %w", c, err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return time.Time{}, fmt.Errorf("store: decode %s: %w", c, err)
	}
	if err := json.Unmarshal(snap.Items, v); err != nil {
		return time.Time{}, fmt.Errorf("store: decode %s items: %w", c, err)
	}
	return snap.SavedAt, nil
}

// Clear removes the session and every snapshot, used on logout.
func (p *persistence) Clear() error {
	var keys []string
	for key := range p.d.Keys(nil) {
		keys = append(keys, key)
	}
	var errs []error
	for _, key := range keys {
		if err := p.d.Erase(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `bucket-name`.
func toKey(bucket, name string) string {
	return fmt.Sprintf("%s-%s", bucket, name)
}
