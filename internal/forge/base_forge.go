package forge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/gitgud/internal/foundation/errors"
	"git.home.luguber.info/inful/gitgud/internal/logfields"
	"git.home.luguber.info/inful/gitgud/internal/retry"
)

// BaseForge provides common HTTP operations for forge clients.
type BaseForge struct {
	httpClient *http.Client
	apiURL     string
	token      string

	authHeaderPrefix string
	customHeaders    map[string]string
	policy           retry.Policy
}

// NewBaseForge creates a BaseForge with common forge HTTP client settings.
func NewBaseForge(httpClient *http.Client, apiURL, token string) *BaseForge {
	return &BaseForge{
		httpClient:       httpClient,
		apiURL:           apiURL,
		token:            token,
		authHeaderPrefix: "Bearer ",
		customHeaders:    make(map[string]string),
		policy:           retry.DefaultPolicy(),
	}
}

// SetRetryPolicy replaces the policy applied to transient failures.
func (b *BaseForge) SetRetryPolicy(p retry.Policy) {
	b.policy = p
}

// SetCustomHeader sets forge-specific headers such as the API version.
func (b *BaseForge) SetCustomHeader(key, value string) {
	b.customHeaders[key] = value
}

// NewRequest creates an HTTP request relative to the API URL. Query strings
// in endpoint are preserved.
func (b *BaseForge) NewRequest(ctx context.Context, method, endpoint string, body any) (*http.Request, error) {
	cleanEndpoint := strings.TrimPrefix(endpoint, "/")

	var rawQuery string
	if idx := strings.Index(cleanEndpoint, "?"); idx != -1 {
		rawQuery = cleanEndpoint[idx+1:]
		cleanEndpoint = cleanEndpoint[:idx]
	}

	u, err := url.Parse(b.apiURL)
	if err != nil {
		return nil, ErrInvalidURL.WithContext("api_url", b.apiURL).Wrap(err)
	}
	u.Path = path.Join(strings.TrimSuffix(u.Path, "/"), cleanEndpoint)
	u.RawQuery = rawQuery

	reader := io.Reader(http.NoBody)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.ForgeError("failed to marshal request body").WithCause(err).Build()
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, errors.ForgeError("failed to create request").
			WithCause(err).
			WithContext("method", method).
			WithContext("url", u.String()).
			Build()
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", b.authHeaderPrefix+b.token)
	req.Header.Set("User-Agent", "gitgud/1.0")
	for key, value := range b.customHeaders {
		req.Header.Set(key, value)
	}
	return req, nil
}

// DoRequest executes an HTTP request and decodes a JSON response into result
// when result is non-nil. Network failures, rate limiting and 5xx responses
// are retried according to the retry policy.
func (b *BaseForge) DoRequest(req *http.Request, result any) error {
	attempt := 0
	return b.policy.Do(req.Context(), canRetry, func() error {
		attempt++
		if attempt > 1 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return errors.ForgeError("failed to rewind request body").WithCause(err).WithRetry(errors.RetryNever).Build()
			}
			req.Body = body
		}
		return b.doOnce(req, result)
	})
}

func canRetry(err error) bool {
	ce, ok := errors.AsClassified(err)
	return ok && ce.CanRetry()
}

func (b *BaseForge) doOnce(req *http.Request, result any) error {
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return errors.NetworkError("failed to execute forge request").
			WithCause(err).
			WithContext("method", req.Method).
			WithContext("url", logfields.RedactURL(req.URL.String())).
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		limitedBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		bodyStr := strings.ReplaceAll(string(limitedBody), "\n", " ")

		category := errors.CategoryForge
		strategy := errors.RetryNever
		switch {
		case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
			category = errors.CategoryAuth
		case resp.StatusCode == http.StatusNotFound:
			category = errors.CategoryNotFound
		case resp.StatusCode == http.StatusTooManyRequests:
			strategy = errors.RetryRateLimit
		case resp.StatusCode >= 500:
			strategy = errors.RetryBackoff
		}

		return errors.NewError(category, fmt.Sprintf("forge API error: %s", resp.Status)).
			WithRetry(strategy).
			WithContext("status", resp.Status).
			WithContext("code", resp.StatusCode).
			WithContext("method", req.Method).
			WithContext("url", req.URL.String()).
			WithContext("response", bodyStr).
			Build()
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return errors.ForgeError("failed to decode response").WithCause(err).WithRetry(errors.RetryNever).Build()
		}
	}
	return nil
}

// fetchAllPages calls fetch with page numbers starting at 1 until a page
// returns fewer than pageSize items.
func fetchAllPages[T any](pageSize int, fetch func(page int) ([]T, error)) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		items, err := fetch(page)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) < pageSize {
			return all, nil
		}
	}
}
