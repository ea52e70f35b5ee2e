package tidalapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetTrackDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tracks/123" {
			t.Fatalf("path = %q, want /tracks/123", r.URL.Path)
		}
		w.Write([]byte(`{"id":123,"title":"Track Title","duration":200,"explicit":false,"artists":[{"id":1,"name":"Someone"}]}`))
	}))
	defer server.Close()

	c := testClient(server)
	track, err := c.GetTrack(context.Background(), 123)
	if err != nil {
		t.Fatalf("GetTrack: %v", err)
	}
	if track.Title != "Track Title" || track.Duration != 200 {
		t.Fatalf("unexpected track: %+v", track)
	}
	if track.DurationFormatted() != "3:20" {
		t.Fatalf("DurationFormatted = %q, want 3:20", track.DurationFormatted())
	}
}

func TestGetSessionUpdatesClientState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"userId":555,"countryCode":"DE"}`))
	}))
	defer server.Close()

	c := testClient(server)
	session, err := c.GetSession(context.Background())
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if session.CountryCode != "DE" || c.CountryCode != "DE" || c.UserID != 555 {
		t.Fatalf("GetSession did not update client state: %+v / %+v", session, c)
	}
}

func TestGetTracksEmptyIDsShortCircuits(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	c := testClient(server)
	tracks, err := c.GetTracks(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetTracks: %v", err)
	}
	if tracks != nil {
		t.Fatalf("expected nil tracks for empty id list")
	}
	if called {
		t.Fatal("GetTracks should not hit the network for an empty id list")
	}
}
