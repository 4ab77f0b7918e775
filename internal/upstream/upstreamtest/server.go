// Package upstreamtest provides a fake PokeAPI for tests.
package upstreamtest

import (
	"embed"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

//go:embed testdata/*.json
var fixtures embed.FS

// Identifiers with special behavior on the fake server.
const (
	MalformedID   = "missingno"
	RateLimitedID = "ratelimited"
	BrokenID      = "boom"
)

var aliases = map[string]string{
	"1":            "bulbasaur",
	"bulbasaur":    "bulbasaur",
	"10199":        "pikachu-gmax",
	"pikachu-gmax": "pikachu-gmax",
	MalformedID:    "missingno",
}

// Server is a running fake PokeAPI rooted at URL.
type Server struct {
	*httptest.Server

	mu   sync.Mutex
	hits map[string]int
}

// NewServer starts a fake PokeAPI and closes it when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{hits: map[string]int{}}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /pokemon/{id}", s.pokemon)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// Fixture returns the raw body served for name.
func Fixture(t testing.TB, name string) []byte {
	t.Helper()
	b, err := fixtures.ReadFile("testdata/" + name + ".json")
	if err != nil {
		t.Fatalf("fixture %s: %v", name, err)
	}
	return b
}

// Hits reports how many requests reached the server for id.
func (s *Server) Hits(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[id]
}

// TotalHits reports how many requests reached the server.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.hits {
		n += v
	}
	return n
}

func (s *Server) pokemon(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	s.hits[id]++
	s.mu.Unlock()

	switch id {
	case RateLimitedID:
		http.Error(w, "slow down", http.StatusTooManyRequests)
		return
	case BrokenID:
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}
	name, ok := aliases[id]
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	b, err := fixtures.ReadFile("testdata/" + name + ".json")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(b)
}
