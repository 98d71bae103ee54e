// Package quote provides the quote of the day, cached for the local
// calendar day it was fetched on.
package quote

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/energy/internal/catalog"
	"github.com/five82/energy/internal/kv"
)

// StorageKey holds the cached quote record.
const StorageKey = "quote_cache_v1"

const dateLayout = "2006-01-02"

// Fetcher retrieves a fresh quote.
type Fetcher interface {
	FetchQuote(ctx context.Context) (catalog.Quote, error)
}

type record struct {
	Date   string `json:"date"`
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

func (r record) quote() catalog.Quote {
	return catalog.Quote{Quote: r.Quote, Author: r.Author}
}

// Service returns the quote of the day.
type Service struct {
	cache   *kv.Cache
	fetcher Fetcher
	log     logrus.FieldLogger
	now     func() time.Time
}

// New builds a Service.
func New(cache *kv.Cache, fetcher Fetcher, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{cache: cache, fetcher: fetcher, log: log, now: time.Now}
}

// Today returns today's quote. A complete cached record from today is used
// as-is; otherwise a fresh quote is fetched and cached. When fetching fails
// any complete cached record is returned. ok is false when there is nothing
// to show.
func (s *Service) Today(ctx context.Context) (catalog.Quote, bool) {
	today := s.now().Format(dateLayout)
	cached := kv.ReadJSON(s.cache, StorageKey, record{})
	if cached.Date == today && cached.quote().Complete() {
		return cached.quote(), true
	}

	fresh, err := s.fetcher.FetchQuote(ctx)
	if err == nil && fresh.Complete() {
		s.cache.WriteJSON(StorageKey, record{Date: today, Quote: fresh.Quote, Author: fresh.Author})
		return fresh, true
	}
	if err != nil {
		s.log.WithError(err).Warn("fetch quote failed")
	}
	if cached.quote().Complete() {
		return cached.quote(), true
	}
	return catalog.Quote{}, false
}
