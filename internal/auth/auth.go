// Package auth implements the device-code OAuth session against Tidal's
// first-party TV/Android client grant: device authorization, token polling,
// and refresh. Grounded directly on original_source/tidal-rs/src/core/auth.rs,
// which itself hand-rolls these three endpoint calls with plain HTTP form
// posts rather than an OAuth client crate — internal/auth follows the same
// shape against net/http instead of golang.org/x/oauth2's device-grant
// helper, whose built-in poll loop would hide the exact per-iteration
// timing this package's tests depend on (see DESIGN.md).
package auth

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tidal-dl/tidal-dl/internal/tidalerr"
)

// Fixed TV/Android client credentials. Every Tidal client built on the
// first-party device-code grant shares these; they identify the app, not
// the user.
const (
	clientID        = "7m7Ap0JC9j1cOM3n"
	clientSecretB64 = "vRAdA108tlvkJpTsGZS8rGZ7xTlbJ0qaZ2K9saEzsgY="
	scope           = "r_usr w_usr"
)

const defaultBaseURL = "https://auth.tidal.com/v1/oauth2"

// Credentials is the persisted session state: an access token, the refresh
// token that can mint a new one, its absolute expiry, and the country code
// learned from the first successful session lookup.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	CountryCode  string `json:"country_code"`
}

// ExpiresWithin reports whether these credentials expire within threshold
// of now — the 300-second window the session bootstrap uses to decide
// whether to refresh proactively.
func (c Credentials) ExpiresWithin(threshold time.Duration, now time.Time) bool {
	return now.Add(threshold).Unix() >= c.ExpiresAt
}

// DeviceAuthResponse is the device_authorization endpoint's response: a
// code for the client to poll with, and a code/URL pair for the user to
// visit.
type DeviceAuthResponse struct {
	DeviceCode              string `json:"device_code"`
	UserCode                string `json:"user_code"`
	VerificationURI         string `json:"verification_uri"`
	VerificationURIComplete string `json:"verification_uri_complete"`
	ExpiresIn               int    `json:"expires_in"`
	Interval                int    `json:"interval"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type tokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Session holds the HTTP client and clock the device-code/token calls run
// against. Tests override baseURL and sleep; production code leaves both at
// their zero value and gets the real endpoint and a real time.Sleep.
type Session struct {
	httpClient *http.Client
	baseURL    string
	sleep      func(time.Duration)
}

// New builds a Session. A nil httpClient gets a client with a generous
// timeout; the device-code grant's own polling cadence, not the transport,
// governs how long authorization takes.
func New(httpClient *http.Client) *Session {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Session{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		sleep:      time.Sleep,
	}
}

func (s *Session) post(ctx context.Context, path string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, tidalerr.AuthWrap("build auth request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, tidalerr.Network(err)
	}
	return resp, nil
}

// StartDeviceAuth requests a device/user code pair, the first step of the
// grant: the caller shows UserCode and VerificationURI (or
// VerificationURIComplete, if present) to the user, then calls PollForToken
// with DeviceCode and Interval.
func (s *Session) StartDeviceAuth(ctx context.Context) (*DeviceAuthResponse, error) {
	form := url.Values{
		"client_id": {clientID},
		"scope":     {scope},
	}
	resp, err := s.post(ctx, "/device_authorization", form)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, tidalerr.IO(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, tidalerr.API(resp.StatusCode, string(body))
	}

	var out DeviceAuthResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, tidalerr.JSON(err)
	}
	out.VerificationURI = formatURL(out.VerificationURI)
	out.VerificationURIComplete = formatURL(out.VerificationURIComplete)
	return &out, nil
}

// formatURL prefixes url with https:// if the server returned a bare host.
// An empty string (VerificationURIComplete is optional) passes through
// unchanged.
func formatURL(url string) string {
	if url == "" || strings.HasPrefix(url, "http") {
		return url
	}
	return "https://" + url
}

// PollForToken polls the token endpoint at the server-dictated interval
// until the user approves or denies the device, or the code expires. It
// sleeps before every attempt, including the first, per the device-code
// grant's own recommendation not to poll immediately.
//
// On "slow_down" it sleeps an additional 5 seconds on this iteration only
// and continues, leaving interval unchanged for subsequent iterations; on
// "authorization_pending" it continues unchanged; "expired_token" and
// "access_denied" are terminal and return a KindAuth error with no
// Credentials. Any other error code from the server is also terminal.
func (s *Session) PollForToken(ctx context.Context, deviceCode string, interval int) (*Credentials, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, tidalerr.AuthWrap("device auth canceled", err)
		}
		s.sleep(time.Duration(interval) * time.Second)

		form := url.Values{
			"client_id":     {clientID},
			"client_secret": {clientSecretB64},
			"device_code":   {deviceCode},
			"grant_type":    {"urn:ietf:params:oauth:grant-type:device_code"},
			"scope":         {scope},
		}
		resp, err := s.post(ctx, "/token", form)
		if err != nil {
			return nil, err
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, tidalerr.IO(readErr)
		}

		if resp.StatusCode == http.StatusOK {
			var tok tokenResponse
			if err := json.Unmarshal(body, &tok); err != nil {
				return nil, tidalerr.JSON(err)
			}
			return &Credentials{
				AccessToken:  tok.AccessToken,
				RefreshToken: tok.RefreshToken,
				ExpiresAt:    time.Now().Unix() + tok.ExpiresIn,
			}, nil
		}

		var tokErr tokenErrorResponse
		if err := json.Unmarshal(body, &tokErr); err != nil {
			return nil, tidalerr.API(resp.StatusCode, string(body))
		}

		switch tokErr.Error {
		case "authorization_pending":
			continue
		case "slow_down":
			s.sleep(5 * time.Second)
			continue
		case "expired_token":
			return nil, tidalerr.Auth("device code expired")
		case "access_denied":
			return nil, tidalerr.Auth("access denied")
		default:
			return nil, tidalerr.Auth("device auth failed: " + tokErr.Error)
		}
	}
}

// Refresh exchanges a refresh token for a new access token. It makes a
// single attempt with no retry — a refresh failure means re-authenticating
// from scratch, not hammering the token endpoint.
//
// If the server's response omits a new refresh_token (it is allowed to),
// the prior refreshToken is preserved rather than overwritten with an
// empty string — the original client did not do this and could strand a
// session on its next refresh attempt.
func (s *Session) Refresh(ctx context.Context, refreshToken string) (*Credentials, error) {
	form := url.Values{
		"client_id":     {clientID},
		"client_secret": {clientSecretB64},
		"refresh_token": {refreshToken},
		"grant_type":    {"refresh_token"},
	}
	resp, err := s.post(ctx, "/token", form)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, tidalerr.IO(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, tidalerr.Auth("refresh failed: " + string(body))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, tidalerr.JSON(err)
	}

	newRefresh := tok.RefreshToken
	if newRefresh == "" {
		newRefresh = refreshToken
	}
	return &Credentials{
		AccessToken:  tok.AccessToken,
		RefreshToken: newRefresh,
		ExpiresAt:    time.Now().Unix() + tok.ExpiresIn,
	}, nil
}
