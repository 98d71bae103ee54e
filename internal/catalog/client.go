package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Fetcher defines the read side of the catalog API.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchCategories(ctx context.Context, filter Filter, page int) (CategoryPage, error)
	FetchExercises(ctx context.Context, query ExerciseQuery) (ExercisePage, error)
	FetchExercise(ctx context.Context, id string) (Exercise, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// ErrEmptyResponse is returned by typed fetches whose response carried no
// usable payload (204 or an undecodable body).
var ErrEmptyResponse = errors.New("empty response")

// Client talks to the exercise catalog HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	limiter   *rate.Limiter
	log       logrus.FieldLogger
}

const (
	// DefaultBaseURL is the public catalog API.
	DefaultBaseURL   = "https://your-energy.b.goit.study/api"
	defaultUserAgent = "energy/0.1"
	apiPrefix        = "/api/"
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default http.Client. The
// default client has none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit throttles outgoing requests to rps with the given burst.
// A non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient builds a Client for the API rooted at base.
func NewClient(base string, opts ...Option) (*Client, error) {
	u, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   u,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// RequestOptions describe a single request. Body, when set, is encoded as JSON.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	Body    any
}

// FetchJSON performs a request against path and decodes the JSON response
// into dest. It returns false with a nil error when the response carried no
// payload: a 204, or a body that is not JSON. Non-2xx responses fail with a
// *RequestError.
func (c *Client) FetchJSON(ctx context.Context, path string, opts RequestOptions, dest any) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("client is nil")
	}
	payload, err := c.do(ctx, path, opts)
	if err != nil {
		return false, err
	}
	if payload == nil {
		return false, nil
	}
	if dest == nil {
		return true, nil
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		c.log.WithError(err).WithField("path", path).Debug("payload does not match destination")
		return false, nil
	}
	return true, nil
}

// FetchCategories retrieves one page of categories for filter.
func (c *Client) FetchCategories(ctx context.Context, filter Filter, page int) (CategoryPage, error) {
	if page < 1 {
		page = 1
	}
	values := url.Values{}
	values.Set("filter", string(filter))
	values.Set("page", strconv.Itoa(page))

	path := "/filters?" + values.Encode()
	var raw json.RawMessage
	if _, err := c.FetchJSON(ctx, path, RequestOptions{}, &raw); err != nil {
		return CategoryPage{}, err
	}
	page, err := normalizeCategoryPage(raw)
	if err != nil {
		c.log.WithError(err).WithField("path", path).Debug("skipped undecodable categories")
	}
	return page, nil
}

// FetchExercises retrieves one page of exercises within a category.
func (c *Client) FetchExercises(ctx context.Context, query ExerciseQuery) (ExercisePage, error) {
	key := query.Filter.QueryKey()
	if key == "" {
		return ExercisePage{}, fmt.Errorf("unknown filter %q", query.Filter)
	}
	if strings.TrimSpace(query.Category) == "" {
		return ExercisePage{}, fmt.Errorf("category required")
	}
	page := query.Page
	if page < 1 {
		page = 1
	}
	values := url.Values{}
	values.Set(key, query.Category)
	values.Set("page", strconv.Itoa(page))
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if keyword := strings.TrimSpace(query.Keyword); keyword != "" {
		values.Set("keyword", keyword)
	}

	path := "/exercises?" + values.Encode()
	var raw json.RawMessage
	if _, err := c.FetchJSON(ctx, path, RequestOptions{}, &raw); err != nil {
		return ExercisePage{}, err
	}
	page, err := normalizeExercisePage(raw)
	if err != nil {
		c.log.WithError(err).WithField("path", path).Debug("skipped undecodable exercises")
	}
	return page, nil
}

// FetchExercise retrieves a single exercise.
func (c *Client) FetchExercise(ctx context.Context, id string) (Exercise, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Exercise{}, fmt.Errorf("exercise id required")
	}
	var ex Exercise
	ok, err := c.FetchJSON(ctx, "/exercises/"+url.PathEscape(id), RequestOptions{}, &ex)
	if err != nil {
		return Exercise{}, err
	}
	if !ok {
		return Exercise{}, fmt.Errorf("exercise %s: %w", id, ErrEmptyResponse)
	}
	return ex, nil
}

// FetchQuote retrieves the quote of the day.
func (c *Client) FetchQuote(ctx context.Context) (Quote, error) {
	var q Quote
	ok, err := c.FetchJSON(ctx, "/quote", RequestOptions{}, &q)
	if err != nil {
		return Quote{}, err
	}
	if !ok {
		return Quote{}, fmt.Errorf("quote: %w", ErrEmptyResponse)
	}
	return q, nil
}

// Subscribe registers email for the newsletter and returns the server's
// confirmation message, which may be empty.
func (c *Client) Subscribe(ctx context.Context, email string) (string, error) {
	var body messagePayload
	_, err := c.FetchJSON(ctx, "/subscription", RequestOptions{
		Method: http.MethodPost,
		Body:   subscriptionRequest{Email: strings.TrimSpace(email)},
	}, &body)
	if err != nil {
		return "", err
	}
	return body.Message, nil
}

// RateExercise submits a rating for exercise id.
func (c *Client) RateExercise(ctx context.Context, id string, rating Rating) (Exercise, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Exercise{}, fmt.Errorf("exercise id required")
	}
	var ex Exercise
	_, err := c.FetchJSON(ctx, "/exercises/"+url.PathEscape(id)+"/rating", RequestOptions{
		Method: http.MethodPatch,
		Body:   rating,
	}, &ex)
	if err != nil {
		return Exercise{}, err
	}
	return ex, nil
}

// do executes the request and returns the raw JSON payload, nil when the
// response had none.
func (c *Client) do(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	reqURL, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range opts.Headers {
		req.Header.Set(name, value)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.WithFields(logrus.Fields{
		"method": method,
		"url":    reqURL.String(),
		"status": resp.StatusCode,
	}).Debug("api request")

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	var payload json.RawMessage
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && json.Valid(trimmed) {
		payload = trimmed
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{
			Message: errorMessage(payload, statusText(resp)),
			Status:  resp.StatusCode,
			Payload: payload,
		}
	}
	return payload, nil
}

// resolve maps path onto the base URL. Absolute URLs pass through and a
// leading /api/ segment is dropped so it is not doubled with the base path.
func (c *Client) resolve(path string) (*url.URL, error) {
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		u, err := url.Parse(trimmed)
		if err != nil {
			return nil, fmt.Errorf("parse url %q: %w", path, err)
		}
		return u, nil
	}
	if strings.HasPrefix(trimmed, apiPrefix) {
		trimmed = trimmed[len(apiPrefix)-1:]
	}
	joined := strings.TrimSuffix(c.baseURL.String(), "/") + "/" + strings.TrimPrefix(trimmed, "/")
	u, err := url.Parse(joined)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", joined, err)
	}
	return u, nil
}

func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base %q: missing host", base)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
