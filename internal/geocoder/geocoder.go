package geocoder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/FredrikEglese/learnApi/internal/apperr"
)

// Result es un candidato devuelto por el geocoder.
type Result struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formattedAddress"`
	Street           string  `json:"street"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	Postcode         string  `json:"postcode"`
	Country          string  `json:"country"`
}

// Geocoder resuelve una dirección en texto libre a candidatos.
// Una respuesta vacía no es error: significa "no encontrado".
type Geocoder interface {
	Geocode(ctx context.Context, query string) ([]Result, error)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// forma de respuesta estilo Nominatim
type apiResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		Road     string `json:"road"`
		City     string `json:"city"`
		Town     string `json:"town"`
		State    string `json:"state"`
		Postcode string `json:"postcode"`
		Country  string `json:"country"`
	} `json:"address"`
}

func (c *Client) Geocode(ctx context.Context, query string) ([]Result, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("limit", "1")
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Upstreamf("geocoder request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Upstreamf("geocoder returned status %d", resp.StatusCode)
	}

	var raw []apiResult
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, apperr.Upstreamf("geocoder response malformed: %v", err)
	}

	out := make([]Result, 0, len(raw))
	for _, r := range raw {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lng, errLon := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		city := r.Address.City
		if city == "" {
			city = r.Address.Town
		}
		out = append(out, Result{
			Lat:              lat,
			Lng:              lng,
			FormattedAddress: r.DisplayName,
			Street:           r.Address.Road,
			City:             city,
			State:            r.Address.State,
			Postcode:         r.Address.Postcode,
			Country:          r.Address.Country,
		})
	}
	return out, nil
}

var _ Geocoder = (*Client)(nil)
