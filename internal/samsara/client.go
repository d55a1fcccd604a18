// Package samsara is the read-only client for the three Samsara endpoints
// the sync consumes. Any transport error, non-2xx status or malformed body
// is fatal for the run; there is no retry policy.
package samsara

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const requestTimeout = 60 * time.Second

type Client struct {
	http     *resty.Client
	log      *zap.Logger
	configID string
}

// NewClient builds a client for baseURL. authHeader is the literal
// Authorization header value; configID filters the alert-incident stream.
func NewClient(baseURL, authHeader, configID string, log *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(requestTimeout).
		SetHeader("Accept", "application/json").
		SetHeader("Authorization", authHeader)

	return &Client{http: httpClient, log: log, configID: configID}
}

// SafetyEvents fetches every safety event in [start, end], following the
// cursor until the API reports no next page.
func (c *Client) SafetyEvents(ctx context.Context, start, end string) ([]SafetyEvent, error) {
	return fetchPages[SafetyEvent](ctx, c, "/fleet/safety-events", map[string]string{
		"startTime": start,
		"endTime":   end,
	})
}

// AlertIncidents fetches the alert-incident stream for the window, filtered
// to the configured alert stream.
func (c *Client) AlertIncidents(ctx context.Context, start, end string) ([]AlertIncident, error) {
	return fetchPages[AlertIncident](ctx, c, "/alerts/incidents/stream", map[string]string{
		"startTime":        start,
		"endTime":          end,
		"configurationIds": c.configID,
	})
}

// Tags fetches the full tag directory in one request. The endpoint answers
// either a {"data": [...]} envelope or a bare list; both are accepted.
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/tags")
	if err != nil {
		return nil, fmt.Errorf("GET /tags: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("GET /tags: unexpected status %s", resp.Status())
	}

	body := resp.Body()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		body = envelope.Data
	}

	var tags []Tag
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, fmt.Errorf("decode /tags response: %w", err)
	}
	return tags, nil
}

// fetchPages walks a cursor-paginated endpoint and returns every record.
// The loop blocks on each page; a page failing for any reason fails the
// whole fetch.
func fetchPages[T any](ctx context.Context, c *Client, path string, params map[string]string) ([]T, error) {
	var all []T
	after := ""
	page := 0

	for {
		req := c.http.R().SetContext(ctx).SetQueryParams(params)
		if after != "" {
			req.SetQueryParam("after", after)
		}

		resp, err := req.Get(path)
		if err != nil {
			return nil, fmt.Errorf("GET %s: %w", path, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("GET %s: unexpected status %s", path, resp.Status())
		}

		var env pageEnvelope
		if err := json.Unmarshal(resp.Body(), &env); err != nil {
			return nil, fmt.Errorf("decode %s page: %w", path, err)
		}

		if len(env.Data) > 0 {
			var items []T
			if err := json.Unmarshal(env.Data, &items); err != nil {
				return nil, fmt.Errorf("decode %s data: %w", path, err)
			}
			all = append(all, items...)
		}

		page++
		c.log.Debug("page fetched",
			zap.String("path", path),
			zap.Int("page", page),
			zap.Int("total", len(all)),
		)

		if !env.Pagination.HasNextPage {
			return all, nil
		}
		after = env.Pagination.EndCursor
	}
}
