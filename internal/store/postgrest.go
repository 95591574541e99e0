package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/energy-oracle/eo-api/internal/fault"
)

// PostgRESTClient reads the four tables over a PostgREST endpoint (Supabase
// exposes one per project). Filters map 1:1 onto PostgREST's query syntax:
// ?settlement_date=gte.2025-01-01&order=settlement_date.asc&limit=48
type PostgRESTClient struct {
	BaseURL    string
	ServiceKey string
	Client     *http.Client
}

// NewPostgRESTClient creates a client for baseURL (e.g.
// "https://<project>.supabase.co/rest/v1"). The service key is sent as both
// the apikey header and a bearer token, which is what Supabase expects.
func NewPostgRESTClient(baseURL, serviceKey string) *PostgRESTClient {
	return &PostgRESTClient{
		BaseURL:    baseURL,
		ServiceKey: serviceKey,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Query implements Querier.
func (c *PostgRESTClient) Query(ctx context.Context, q Query) ([]Row, error) {
	if q.Table == "" {
		return nil, fmt.Errorf("table is required")
	}

	u, err := url.Parse(c.BaseURL + "/" + q.Table)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	params := url.Values{}
	params.Set("select", "*")
	for _, f := range q.Filters {
		params.Add(f.Column, string(f.Op)+"."+f.Value)
	}
	for _, o := range q.Order {
		dir := "asc"
		if o.Desc {
			dir = "desc"
		}
		params.Add("order", o.Column+"."+dir)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", "Bearer "+c.ServiceKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fault.Wrap(err, fault.Unavailable, "store request failed for %s", q.Table)
	}
	defer resp.Body.Close()

	log.Printf("[store] GET /%s -> %d (%v, %d filters)", q.Table, resp.StatusCode, time.Since(start), len(q.Filters))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fault.New(fault.Unavailable, "store returned %d for %s: %s", resp.StatusCode, q.Table, string(body))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var rows []Row
	if err := dec.Decode(&rows); err != nil {
		return nil, fault.Wrap(err, fault.SchemaMismatch, "store response for %s is not a row array", q.Table)
	}
	return rows, nil
}
