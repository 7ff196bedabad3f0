package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FredrikEglese/learnApi/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodeParsesFirstCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "221B Baker Street, London", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"lat": "51.5237629",
			"lon": "-0.1585557",
			"display_name": "221B, Baker Street, London, NW1 6XE, United Kingdom",
			"address": {
				"road": "Baker Street",
				"city": "London",
				"state": "England",
				"postcode": "NW1 6XE",
				"country": "United Kingdom"
			}
		}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	results, err := c.Geocode(context.Background(), "221B Baker Street, London")
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, 51.5237629, r.Lat)
	assert.Equal(t, -0.1585557, r.Lng)
	assert.Equal(t, "Baker Street", r.Street)
	assert.Equal(t, "London", r.City)
	assert.Equal(t, "NW1 6XE", r.Postcode)
	assert.Equal(t, "United Kingdom", r.Country)
}

func TestGeocodeEmptyResponseIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	results, err := c.Geocode(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGeocodeUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Geocode(context.Background(), "anything")
	require.Error(t, err)

	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindUpstream, e.Kind)
}
