// Package tidalapi implements the HTTP client core (C4) and the domain
// models (C5) of the Tidal catalogue API. Grounded on
// original_source/tidal-rs/src/core/api/client.rs; the retry law, header
// set, and URL-assembly rules below are a direct port of that file's
// get_with_retry/headers/api_url/listen_url/pages_url/suggestions_url.
package tidalapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/net/http2"

	"github.com/tidal-dl/tidal-dl/internal/tidalerr"
)

const (
	apiBase         = "https://api.tidal.com/v1"
	listenAPIBase   = "https://listen.tidal.com/v1"
	pagesBase       = "https://tidal.com/v1/pages"
	suggestionsBase = "https://tidal.com/v2"

	clientToken = "7m7Ap0JC9j1cOM3n"
	userAgent   = "TIDAL_ANDROID/1039 okhttp/3.14.9"
)

// Config mirrors ClientConfig from the original client: timeout and retry
// law are both tunable, defaults match the original's hardcoded values.
// The four Base fields are normally left empty, which resolves to the real
// Tidal hosts; tests point them at an httptest.Server to exercise the
// client without a network call.
type Config struct {
	Timeout       time.Duration
	MaxRetries    int
	RetryDelay    time.Duration
	UserAgent     string
	ClientVersion string

	APIBase         string
	ListenAPIBase   string
	PagesBase       string
	SuggestionsBase string
}

// DefaultConfig returns the original client's hardcoded defaults: 30s
// timeout, 3 retries, 500ms linear step.
func DefaultConfig() Config {
	return Config{
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		RetryDelay: 500 * time.Millisecond,
		UserAgent:  userAgent,
	}
}

var sharedTransport = func() *http.Transport {
	t := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	// Real HTTP/2 support over the default transport's own TLS stack —
	// not a fingerprint-spoofing layer, just negotiated ALPN.
	_ = http2.ConfigureTransport(t)
	return t
}()

// Client is a cheap-to-copy value wrapping one shared transport, a
// session's bearer token, and the country code learned from GetSession.
// It carries no global state; callers construct one per session and pass
// it down explicitly (spec §9's "capability, not global state").
type Client struct {
	http         *http.Client
	config       Config
	AccessToken  string
	RefreshToken string
	CountryCode  string
	UserID       int64
}

// New builds a Client for an already-authenticated session.
func New(accessToken, refreshToken, countryCode string, config Config) *Client {
	return &Client{
		http: &http.Client{
			Transport: sharedTransport,
			Timeout:   config.Timeout,
		},
		config:       config,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		CountryCode:  countryCode,
	}
}

func (c *Client) setHeaders(req *http.Request) error {
	if c.AccessToken == "" {
		return tidalerr.Auth("no access token set")
	}
	req.Header.Set("X-Tidal-Token", clientToken)
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Accept-Encoding", "gzip")
	ua := c.config.UserAgent
	if ua == "" {
		ua = userAgent
	}
	req.Header.Set("User-Agent", ua)
	if c.config.ClientVersion != "" {
		req.Header.Set("x-tidal-client-version", c.config.ClientVersion)
	}
	return nil
}

// readBody drains resp.Body, manually gunzipping if Content-Encoding: gzip
// is present. net/http only auto-decompresses responses when it added the
// Accept-Encoding header itself; since this client sets that header
// explicitly (the original client does too, via reqwest), the transport
// leaves the body compressed.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	reader := io.Reader(resp.Body)
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, tidalerr.IO(err)
		}
		defer gz.Close()
		reader = gz
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, tidalerr.IO(err)
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// getOnce performs a single GET attempt with no retry, the unit
// get_with_retry below repeats.
func (c *Client) getOnce(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return tidalerr.Network(err)
	}
	if err := c.setHeaders(req); err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return tidalerr.Network(err)
	}
	body, err := readBody(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return tidalerr.API(resp.StatusCode, truncate(string(body), 200))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return tidalerr.JSON(err)
	}
	return nil
}

// get runs getOnce under the linear-backoff retry law: attempt 0 runs
// immediately, attempt N (N>0) sleeps retry_delay*N first. Only a
// KindNetwork failure is retried — a non-2xx API response or a JSON
// decode failure is terminal immediately.
func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return tidalerr.Network(ctx.Err())
			case <-time.After(c.config.RetryDelay * time.Duration(attempt)):
			}
		}

		err := c.getOnce(ctx, rawURL, out)
		if err == nil {
			return nil
		}

		var te *tidalerr.Error
		isNetwork := false
		if e, ok := err.(*tidalerr.Error); ok {
			te = e
			isNetwork = te.Kind() == tidalerr.KindNetwork
		}
		if isNetwork && attempt < c.config.MaxRetries {
			lastErr = err
			continue
		}
		return err
	}
	if lastErr != nil {
		return lastErr
	}
	return tidalerr.API(0, "max retries exceeded")
}

// Get issues a GET request against an already-assembled URL and decodes
// the JSON response body into out.
func (c *Client) Get(ctx context.Context, rawURL string, out any) error {
	return c.get(ctx, rawURL, out)
}

// HTTPClient exposes the shared transport for callers that fetch
// unauthenticated CDN URLs the API hands back, such as C7's stream
// segment fetch — those requests carry no bearer token and bypass
// setHeaders entirely.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// postLike runs one request for POST/PUT/DELETE — these are never
// retried in the original client either, only GET is.
func (c *Client) postLike(ctx context.Context, method, rawURL string, body []byte, out any) error {
	var reqBody io.Reader
	if body != nil {
		reqBody = strings.NewReader(string(body))
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return tidalerr.Network(err)
	}
	if err := c.setHeaders(req); err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return tidalerr.Network(err)
	}
	respBody, err := readBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return tidalerr.API(resp.StatusCode, truncate(string(respBody), 200))
	}
	if out == nil {
		return nil
	}
	if len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return tidalerr.JSON(err)
	}
	return nil
}

// Post issues a POST with an optional JSON body and decodes the response.
func (c *Client) Post(ctx context.Context, rawURL string, body []byte, out any) error {
	return c.postLike(ctx, http.MethodPost, rawURL, body, out)
}

// PostEmpty issues a POST and discards any response body.
func (c *Client) PostEmpty(ctx context.Context, rawURL string, body []byte) error {
	return c.postLike(ctx, http.MethodPost, rawURL, body, nil)
}

// PutEmpty issues a PUT and discards any response body.
func (c *Client) PutEmpty(ctx context.Context, rawURL string, body []byte) error {
	return c.postLike(ctx, http.MethodPut, rawURL, body, nil)
}

// DeleteEmpty issues a DELETE and discards any response body.
func (c *Client) DeleteEmpty(ctx context.Context, rawURL string) error {
	return c.postLike(ctx, http.MethodDelete, rawURL, nil, nil)
}

func buildQuery(countryCode, deviceType string, extra [][2]string) string {
	q := url.Values{}
	q.Set("countryCode", countryCode)
	q.Set("locale", "en_US")
	q.Set("deviceType", deviceType)
	for _, kv := range extra {
		q.Set(kv[0], kv[1])
	}
	return q.Encode()
}

func (c *Client) apiBase() string {
	if c.config.APIBase != "" {
		return c.config.APIBase
	}
	return apiBase
}

func (c *Client) listenAPIBase() string {
	if c.config.ListenAPIBase != "" {
		return c.config.ListenAPIBase
	}
	return listenAPIBase
}

func (c *Client) pagesBase() string {
	if c.config.PagesBase != "" {
		return c.config.PagesBase
	}
	return pagesBase
}

func (c *Client) suggestionsBase() string {
	if c.config.SuggestionsBase != "" {
		return c.config.SuggestionsBase
	}
	return suggestionsBase
}

// APIURL assembles a URL against api.tidal.com/v1 with the standard
// countryCode/locale/deviceType=TV query parameters plus path-specific
// extras.
func (c *Client) APIURL(path string, extra ...[2]string) string {
	return c.apiBase() + "/" + path + "?" + buildQuery(c.CountryCode, "TV", extra)
}

// ListenURL assembles a URL against listen.tidal.com/v1, same parameter
// set as APIURL.
func (c *Client) ListenURL(path string, extra ...[2]string) string {
	return c.listenAPIBase() + "/" + path + "?" + buildQuery(c.CountryCode, "TV", extra)
}

// PagesURL assembles a URL against tidal.com/v1/pages with deviceType=
// BROWSER — the pages endpoints (album credits, editorial content) are
// served to the browser client, not the TV client.
func (c *Client) PagesURL(path string, extra ...[2]string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return c.pagesBase() + "/" + path + sep + buildQuery(c.CountryCode, "BROWSER", extra)
}

// SuggestionsURL assembles a search-suggestions URL against tidal.com/v2.
func (c *Client) SuggestionsURL(query string, explicit, hybrid bool) string {
	q := url.Values{}
	q.Set("countryCode", c.CountryCode)
	q.Set("explicit", boolString(explicit))
	q.Set("hybrid", boolString(hybrid))
	q.Set("query", query)
	return c.suggestionsBase() + "/suggestions/?" + q.Encode()
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
