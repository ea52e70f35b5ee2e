package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tidal-dl/tidal-dl/internal/tidalerr"
)

func newTestSession(t *testing.T, handler http.HandlerFunc) (*Session, *[]time.Duration) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var sleeps []time.Duration
	s := New(server.Client())
	s.baseURL = server.URL
	s.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return s, &sleeps
}

// TestPollForTokenExactCallCount is testable property #10: two
// authorization_pending responses followed by a 200 means exactly three
// token-endpoint calls, each preceded by a sleep of the current interval.
func TestPollForTokenExactCallCount(t *testing.T) {
	calls := 0
	s, sleeps := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"authorization_pending"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"access_token":"tok","refresh_token":"ref","expires_in":3600}`))
	})

	creds, err := s.PollForToken(context.Background(), "devicecode", 2)
	if err != nil {
		t.Fatalf("PollForToken: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
	if len(*sleeps) != 3 {
		t.Fatalf("sleeps = %d, want 3", len(*sleeps))
	}
	for _, d := range *sleeps {
		if d != 2*time.Second {
			t.Errorf("sleep = %v, want 2s", d)
		}
	}
	if creds.AccessToken != "tok" || creds.RefreshToken != "ref" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
}

// TestPollForTokenSlowDownSleepsExtraOnce is spec §4.1's "slow_down" rule:
// a one-time additional 5s sleep on the current iteration, with interval
// left unchanged for the iterations that follow.
func TestPollForTokenSlowDownSleepsExtraOnce(t *testing.T) {
	calls := 0
	s, sleeps := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"slow_down"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"access_token":"tok","refresh_token":"ref","expires_in":3600}`))
	})

	if _, err := s.PollForToken(context.Background(), "devicecode", 2); err != nil {
		t.Fatalf("PollForToken: %v", err)
	}
	if (*sleeps)[0] != 2*time.Second || (*sleeps)[1] != 5*time.Second || (*sleeps)[2] != 2*time.Second {
		t.Fatalf("sleeps = %v, want [2s 5s 2s]", *sleeps)
	}
}

// TestPollForTokenConsecutiveSlowDownsDoNotCompound covers two slow_down
// responses in a row: each contributes its own one-time 5s sleep, but
// interval itself never grows, so the sleep after the second slow_down is
// still the original interval, not a compounded one.
func TestPollForTokenConsecutiveSlowDownsDoNotCompound(t *testing.T) {
	calls := 0
	s, sleeps := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"slow_down"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"access_token":"tok","refresh_token":"ref","expires_in":3600}`))
	})

	if _, err := s.PollForToken(context.Background(), "devicecode", 2); err != nil {
		t.Fatalf("PollForToken: %v", err)
	}
	want := []time.Duration{2 * time.Second, 5 * time.Second, 2 * time.Second, 5 * time.Second, 2 * time.Second}
	if len(*sleeps) != len(want) {
		t.Fatalf("sleeps = %v, want %v", *sleeps, want)
	}
	for i, d := range want {
		if (*sleeps)[i] != d {
			t.Fatalf("sleeps = %v, want %v", *sleeps, want)
		}
	}
}

// TestPollForTokenDeniedScenario is scenario S5: the user denies the
// device, and PollForToken returns a KindAuth error with no credentials,
// so the caller never persists anything.
func TestPollForTokenDeniedScenario(t *testing.T) {
	s, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"access_denied"}`))
	})

	creds, err := s.PollForToken(context.Background(), "devicecode", 1)
	if creds != nil {
		t.Fatalf("expected nil credentials on denial, got %+v", creds)
	}
	var te *tidalerr.Error
	if !errors.As(err, &te) {
		t.Fatalf("expected *tidalerr.Error, got %v", err)
	}
	if te.Kind() != tidalerr.KindAuth {
		t.Fatalf("Kind() = %v, want KindAuth", te.Kind())
	}
}

func TestPollForTokenExpired(t *testing.T) {
	s, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"expired_token"}`))
	})

	_, err := s.PollForToken(context.Background(), "devicecode", 1)
	if err == nil {
		t.Fatal("expected error for expired device code")
	}
}

// TestRefreshIdempotence is testable property #9: refreshing twice in a
// row, against a server that returns no refresh_token of its own, always
// yields the same refresh token back out — a refresh never strands the
// session by overwriting it with an empty string.
func TestRefreshIdempotence(t *testing.T) {
	s, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"access_token":"tok1","refresh_token":"","expires_in":3600}`))
	})

	first, err := s.Refresh(context.Background(), "original-refresh")
	if err != nil {
		t.Fatalf("first Refresh: %v", err)
	}
	if first.RefreshToken != "original-refresh" {
		t.Fatalf("first.RefreshToken = %q, want preserved original", first.RefreshToken)
	}

	second, err := s.Refresh(context.Background(), first.RefreshToken)
	if err != nil {
		t.Fatalf("second Refresh: %v", err)
	}
	if second.RefreshToken != "original-refresh" {
		t.Fatalf("second.RefreshToken = %q, want preserved original", second.RefreshToken)
	}
}

func TestRefreshFailureNoRetry(t *testing.T) {
	calls := 0
	s, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("invalid_grant"))
	})

	if _, err := s.Refresh(context.Background(), "stale"); err == nil {
		t.Fatal("expected error for rejected refresh token")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want exactly 1 (no retry on auth failure)", calls)
	}
}

func TestStartDeviceAuth(t *testing.T) {
	s, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		if r.Form.Get("client_id") == "" {
			t.Fatal("expected client_id in device_authorization request")
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"device_code":"dc","user_code":"ABCD-EFGH","verification_uri":"https://link.tidal.com","verification_uri_complete":"https://link.tidal.com?u=ABCD-EFGH","expires_in":300,"interval":2}`))
	})

	resp, err := s.StartDeviceAuth(context.Background())
	if err != nil {
		t.Fatalf("StartDeviceAuth: %v", err)
	}
	if resp.UserCode != "ABCD-EFGH" || resp.Interval != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
