package geocoder

import (
	"context"
	"time"

	"github.com/FredrikEglese/learnApi/internal/cache"
)

const cacheTTL = 24 * time.Hour

// Cached envuelve un Geocoder con el cache de Redis. Las direcciones
// no cambian de coordenadas, así que un TTL largo es seguro.
type Cached struct {
	inner Geocoder
}

func NewCached(inner Geocoder) *Cached {
	return &Cached{inner: inner}
}

func (c *Cached) Geocode(ctx context.Context, query string) ([]Result, error) {
	key := "geocode:" + query

	var cached []Result
	if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}

	results, err := c.inner.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}

	// un miss del geocoder también se cachea, para no pegarle
	// repetidamente con la misma dirección mala
	_ = cache.SetJSON(ctx, key, results, cacheTTL)

	return results, nil
}

var _ Geocoder = (*Cached)(nil)
