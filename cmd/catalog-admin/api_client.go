package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amadeus-works/koechel/modules/catalog/presentation/viewmodels"
	"github.com/amadeus-works/koechel/pkg/configuration"
)

type apiError struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

type listResult struct {
	Items []viewmodels.EntryListItem `json:"items"`
	Total int64                      `json:"total"`
}

type reorderResult struct {
	Success bool                       `json:"success"`
	Entries []viewmodels.EntryListItem `json:"entries"`
}

type catalogAPIClient struct {
	baseURL         *url.URL
	httpClient      *http.Client
	requestIDHeader string
}

func newCatalogAPIClient(baseURL string) (*catalogAPIClient, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = configuration.Use().Origin
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, withCode(exitUsage, fmt.Errorf("invalid --base-url: %q", baseURL))
	}
	return &catalogAPIClient{
		baseURL:         u,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		requestIDHeader: configuration.Use().RequestIDHeader,
	}, nil
}

func (c *catalogAPIClient) doJSON(ctx context.Context, method, path string, query url.Values, reqBody any, out any) (int, *apiError, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return 0, nil, withCode(exitValidation, fmt.Errorf("json marshal request: %w", err))
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return 0, nil, withCode(exitAPI, fmt.Errorf("http request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.requestIDHeader != "" {
		req.Header.Set(c.requestIDHeader, uuid.NewString())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, withCode(exitAPI, fmt.Errorf("http do: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, withCode(exitAPI, fmt.Errorf("http read: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && strings.TrimSpace(apiErr.Code) != "" {
			return resp.StatusCode, &apiErr, nil
		}
		return resp.StatusCode, nil, withCode(exitAPI, fmt.Errorf("http status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(respBody))))
	}

	if out == nil {
		return resp.StatusCode, nil, nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, nil, withCode(exitAPI, fmt.Errorf("json unmarshal response: %w", err))
	}
	return resp.StatusCode, nil, nil
}

func (c *catalogAPIClient) ListEntries(ctx context.Context, view viewDescriptor) ([]viewmodels.EntryListItem, error) {
	q := url.Values{}
	if view.Kind != "" {
		q.Set("kind", view.Kind)
	}
	if view.Year != nil {
		q.Set("year", strconv.Itoa(*view.Year))
	}
	if strings.TrimSpace(view.Query) != "" {
		q.Set("q", strings.TrimSpace(view.Query))
	}
	if strings.TrimSpace(view.Genre) != "" {
		q.Set("genre", strings.TrimSpace(view.Genre))
	}
	q.Set("sortBy", view.SortBy)
	if view.SortDesc {
		q.Set("sortDir", "desc")
	} else {
		q.Set("sortDir", "asc")
	}
	if view.Limit > 0 {
		q.Set("limit", strconv.Itoa(view.Limit))
	}
	if view.Offset > 0 {
		q.Set("offset", strconv.Itoa(view.Offset))
	}

	var page listResult
	_, apiErr, err := c.doJSON(ctx, http.MethodGet, "/catalog/api/entries", q, nil, &page)
	if err != nil {
		return nil, err
	}
	if apiErr != nil {
		return nil, withCode(exitAPI, fmt.Errorf("list failed: %s (%s)", apiErr.Message, apiErr.Code))
	}
	return page.Items, nil
}

func (c *catalogAPIClient) Reorder(ctx context.Context, entryID string, newIndex int, year int, kind string) ([]viewmodels.EntryListItem, error) {
	req := struct {
		EntryID  string `json:"entryId"`
		NewOrder int    `json:"newOrder"`
		Year     int    `json:"year"`
		Kind     string `json:"kind"`
	}{
		EntryID:  entryID,
		NewOrder: newIndex,
		Year:     year,
		Kind:     kind,
	}

	var out reorderResult
	_, apiErr, err := c.doJSON(ctx, http.MethodPatch, "/catalog/api/entries/reorder", nil, req, &out)
	if err != nil {
		return nil, err
	}
	if apiErr != nil {
		return nil, withCode(exitReorder, fmt.Errorf("reorder failed: %s (%s)", apiErr.Message, apiErr.Code))
	}
	if !out.Success {
		return nil, withCode(exitReorder, fmt.Errorf("reorder failed: server reported no success"))
	}
	return out.Entries, nil
}
