package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iho/goaccounts/internal/adapter/http/dto"
)

// apiClient calls the current-account HTTP API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string, timeout time.Duration) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// apiError is a non-2xx answer from the API.
type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, body any, headers map[string]string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}

	return resp, nil
}

func (c *apiClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *apiClient) Report(ctx context.Context, kind, id string, query url.Values) (*dto.ReportResponse, error) {
	var report dto.ReportResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/api/v1/%s/%s/account", kind, url.PathEscape(id)), query, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *apiClient) List(ctx context.Context, companyID, kind string, query url.Values) (*dto.RollupResponse, error) {
	var rollup dto.RollupResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/api/v1/companies/%s/%s/accounts", url.PathEscape(companyID), kind), query, &rollup); err != nil {
		return nil, err
	}
	return &rollup, nil
}

func (c *apiClient) Overview(ctx context.Context, companyID, kind string, query url.Values) (*dto.OverviewResponse, error) {
	var overview dto.OverviewResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/api/v1/companies/%s/%s/accounts/overview", url.PathEscape(companyID), kind), query, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// SendStatement returns the API answer for both accepted and rejected
// statements; only transport and unexpected statuses are errors.
func (c *apiClient) SendStatement(ctx context.Context, kind, id, email, idempotencyKey string) (*dto.StatementResponse, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}

	resp, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/%s/%s/account/statement", kind, url.PathEscape(id)), nil,
		dto.SendStatementRequest{Email: email}, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusUnprocessableEntity:
		var result dto.StatementResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return &result, nil
	default:
		return nil, decodeAPIError(resp)
	}
}

// ExportStatement downloads the XLSX statement and returns it with the file
// name suggested by the server.
func (c *apiClient) ExportStatement(ctx context.Context, kind, id string, query url.Values) ([]byte, string, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/%s/%s/account/statement.xlsx", kind, url.PathEscape(id)), query, nil, nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", decodeAPIError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read statement: %w", err)
	}

	return data, attachmentName(resp.Header.Get("Content-Disposition")), nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &apiError{Status: resp.StatusCode}

	var body dto.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Error
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
	}

	return apiErr
}

func attachmentName(disposition string) string {
	const marker = "filename="
	i := strings.Index(disposition, marker)
	if i < 0 {
		return ""
	}
	return strings.Trim(disposition[i+len(marker):], `"`)
}
