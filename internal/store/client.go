// Package store implements the narrow client through which every handler
// reaches the hosted relational store. The store speaks the PostgREST
// dialect: tables under /rest/v1, filters in the query string, writes
// returning their rows when asked via the Prefer header. The Store
// interface is the complete capability set available to the rest of the
// application; there is no SQL connection anywhere in this service.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Store is the capability set handlers may use against the external
// relational store.
type Store interface {
	Select(ctx context.Context, table string, q Query) ([]Record, error)
	Insert(ctx context.Context, table string, body any) ([]Record, error)
	Update(ctx context.Context, table string, q Query, changes Record) ([]Record, error)
	Delete(ctx context.Context, table string, q Query) ([]Record, error)
	// Upsert inserts or merges keyed on the comma-separated onConflict
	// columns. Requires a matching unique constraint in the destination
	// schema; its absence surfaces as KindNoMatchingConstraint.
	Upsert(ctx context.Context, table string, onConflict string, body any) ([]Record, error)
}

// Client is the REST implementation of Store.
type Client struct {
	base   string // project URL without trailing slash
	apiKey string
	http   *http.Client
}

// New builds a Client for the given project URL and service key.
func New(projectURL, apiKey string) (*Client, error) {
	if projectURL == "" || apiKey == "" {
		return nil, errors.New("store: project URL and api key are required")
	}
	if _, err := url.Parse(projectURL); err != nil {
		return nil, errors.New("store: invalid project URL")
	}
	return &Client{
		base:   strings.TrimRight(projectURL, "/"),
		apiKey: apiKey,
		http:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (c *Client) Select(ctx context.Context, table string, q Query) ([]Record, error) {
	return c.do(ctx, http.MethodGet, table, q.Encode(), "", nil)
}

func (c *Client) Insert(ctx context.Context, table string, body any) ([]Record, error) {
	return c.do(ctx, http.MethodPost, table, "", "return=representation", body)
}

func (c *Client) Update(ctx context.Context, table string, q Query, changes Record) ([]Record, error) {
	return c.do(ctx, http.MethodPatch, table, q.Encode(), "return=representation", changes)
}

func (c *Client) Delete(ctx context.Context, table string, q Query) ([]Record, error) {
	return c.do(ctx, http.MethodDelete, table, q.Encode(), "return=representation", nil)
}

func (c *Client) Upsert(ctx context.Context, table string, onConflict string, body any) ([]Record, error) {
	query := "on_conflict=" + url.QueryEscape(onConflict)
	return c.do(ctx, http.MethodPost, table, query, "return=representation,resolution=merge-duplicates", body)
}

// do performs one REST call and translates failures into *Error exactly
// once, so callers only ever see typed store errors.
func (c *Client) do(ctx context.Context, method, table, query, prefer string, body any) ([]Record, error) {
	endpoint := c.base + "/rest/v1/" + url.PathEscape(table)
	if query != "" {
		endpoint += "?" + query
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindUnknown, Message: "encode request: " + err.Error()}
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Message: err.Error()}
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &Error{Kind: KindTimeout, Message: "store request timed out"}
		}
		return nil, &Error{Kind: KindUnknown, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Message: err.Error()}
	}

	if resp.StatusCode >= 400 {
		return nil, decodeError(resp.StatusCode, raw)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	// Single-object responses (Accept: application/vnd.pgrst.object is not
	// used here, but some endpoints return bare objects) are normalized to
	// a one-element slice.
	trimmed := bytes.TrimSpace(raw)
	if trimmed[0] == '{' {
		var one Record
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, &Error{Kind: KindUnknown, Message: "decode response: " + err.Error()}
		}
		return []Record{one}, nil
	}
	var many []Record
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return nil, &Error{Kind: KindUnknown, Message: "decode response: " + err.Error()}
	}
	return many, nil
}

// decodeError parses the store's error envelope {message, code, details,
// hint} and classifies it.
func decodeError(status int, raw []byte) *Error {
	var env struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Details string `json:"details"`
		Hint    string `json:"hint"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || env.Message == "" && env.Code == "" {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &Error{Kind: KindUnknown, Message: msg, Status: status}
	}
	return &Error{
		Kind:    translateCode(env.Code),
		Code:    env.Code,
		Message: env.Message,
		Details: env.Details,
		Hint:    env.Hint,
		Status:  status,
	}
}
