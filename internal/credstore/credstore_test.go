package credstore

import (
	"testing"

	"github.com/tidal-dl/tidal-dl/internal/auth"
)

func withTempConfigDir(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoadReturnsNilWithoutErroronFreshInstall(t *testing.T) {
	withTempConfigDir(t)
	creds, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if creds != nil {
		t.Fatalf("expected nil credentials on a fresh install, got %+v", creds)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	withTempConfigDir(t)
	want := &auth.Credentials{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
		ExpiresAt:    1_700_000_000,
		CountryCode:  "US",
	}
	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil || *got != *want {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}
}
