package tidalapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchTracksDecodesPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/tracks" {
			t.Fatalf("path = %q, want /search/tracks", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "one more time" {
			t.Fatalf("query = %q", q.Get("query"))
		}
		w.Write([]byte(`{"items":[{"id":1,"title":"One More Time"}],"totalNumberOfItems":1}`))
	}))
	defer server.Close()

	c := testClient(server)
	page, err := c.SearchTracks(context.Background(), "one more time", 10, 0)
	if err != nil {
		t.Fatalf("SearchTracks: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Title != "One More Time" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestSearchCombinesTypes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("types"); got != "ARTISTS,ALBUMS,TRACKS,VIDEOS,PLAYLISTS" {
			t.Fatalf("types = %q", got)
		}
		w.Write([]byte(`{"tracks":{"items":[{"id":2,"title":"Around the World"}]}}`))
	}))
	defer server.Close()

	c := testClient(server)
	results, err := c.Search(context.Background(), "daft punk", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results.Tracks == nil || len(results.Tracks.Items) != 1 {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestGetSuggestionsUsesSuggestionsURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/suggestions/" {
			t.Fatalf("path = %q, want /suggestions/", r.URL.Path)
		}
		w.Write([]byte(`{"suggestions":[{"query":"daft punk"}]}`))
	}))
	defer server.Close()

	c := testClient(server)
	suggestions, err := c.GetSuggestions(context.Background(), "daft")
	if err != nil {
		t.Fatalf("GetSuggestions: %v", err)
	}
	if len(suggestions.Suggestions) != 1 || suggestions.Suggestions[0].Query != "daft punk" {
		t.Fatalf("unexpected suggestions: %+v", suggestions)
	}
}
