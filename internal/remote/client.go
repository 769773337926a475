// Package remote looks up places in an upstream tourism directory when the
// local gazetteer has nothing to offer.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/worldjourney/platoo/internal/models"
)

// DefaultTimeout bounds one upstream request.
const DefaultTimeout = 3500 * time.Millisecond

// Client finds places matching a query in some upstream directory.
type Client interface {
	Lookup(ctx context.Context, query string, limit int) ([]*models.GazetteerEntry, error)
}

// HTTPClient talks to a TAT-style place directory over HTTP.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient builds a client for baseURL. A zero timeout uses the default.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Lookup queries the upstream place search endpoint. Records that cannot be
// mapped to an entry are skipped; records arriving without an ID get a fresh
// one so callers can persist them.
func (c *HTTPClient) Lookup(ctx context.Context, query string, limit int) ([]*models.GazetteerEntry, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u = u.JoinPath("places", "search")
	q := u.Query()
	q.Set("keyword", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "th")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	records, err := decodePlaces(body)
	if err != nil {
		return nil, err
	}
	entries := make([]*models.GazetteerEntry, 0, len(records))
	for _, r := range records {
		e := r.toEntry()
		if e == nil {
			if c.logger != nil {
				c.logger.Debug("skipping unmappable upstream record")
			}
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// placeRecord tolerates the field-name drift seen across upstream responses.
type placeRecord struct {
	PlaceID    string  `json:"place_id"`
	ID         string  `json:"id"`
	PlaceName  string  `json:"place_name"`
	Name       string  `json:"name"`
	Province   string  `json:"province"`
	District   string  `json:"district"`
	Category   string  `json:"category"`
	Popularity float64 `json:"popularity"`
	Detail     string  `json:"detail"`
	Thumbnail  string  `json:"thumbnail_url"`
}

func (r *placeRecord) toEntry() *models.GazetteerEntry {
	name := r.PlaceName
	if name == "" {
		name = r.Name
	}
	if name == "" {
		return nil
	}
	id := r.PlaceID
	if id == "" {
		id = r.ID
	}
	if id == "" {
		id = uuid.NewString()
	}
	pop := r.Popularity
	if pop < 0 {
		pop = 0
	}
	return &models.GazetteerEntry{
		ID:         id,
		Name:       name,
		Province:   r.Province,
		District:   r.District,
		Category:   r.Category,
		Popularity: pop,
		Detail:     r.Detail,
		Thumbnail:  r.Thumbnail,
	}
}

// decodePlaces accepts the envelope variants upstream deployments use: a bare
// array, or an object wrapping the list under "result", "data", or "places".
func decodePlaces(body []byte) ([]*placeRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []*placeRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("failed to parse upstream response: %w", err)
		}
		return records, nil
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Data   json.RawMessage `json:"data"`
		Places json.RawMessage `json:"places"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse upstream response: %w", err)
	}
	for _, raw := range []json.RawMessage{envelope.Result, envelope.Data, envelope.Places} {
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}
		var records []*placeRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("failed to parse upstream response: %w", err)
		}
		return records, nil
	}
	return nil, nil
}
