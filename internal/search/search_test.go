package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"fanclub/internal/catalog"
	"fanclub/internal/common/errors"
	"fanclub/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func fixtureArtists(t *testing.T) []models.Artist {
	t.Helper()
	snap, err := catalog.LoadFixtures("")
	require.NoError(t, err)
	return snap.Artists
}

func names(artists []models.Artist) []string {
	out := make([]string, 0, len(artists))
	for _, a := range artists {
		out = append(out, a.Name)
	}
	return out
}

// ==========================
// MemorySearcher
// ==========================

func TestMemorySearcher_Search(t *testing.T) {
	m := NewMemorySearcher(3)
	require.NoError(t, m.Index(context.Background(), fixtureArtists(t)))

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"substring", "luna", 0, []string{"Luna Vega"}},
		{"case insensitive", "NIGHT", 0, []string{"The Night Owls"}},
		{"inner substring", "har", 0, []string{"Glass Harbor"}},
		{"typo falls back to fuzzy", "lunna", 0, []string{"Luna Vega"}},
		{"typo in full name", "kofi mensha", 0, []string{"Kofi Mensah"}},
		{"short query skips fuzzy", "zz", 0, []string{}},
		{"no match", "metallica", 0, []string{}},
		{"empty lists subscribable artists", "  ", 0, []string{"Luna Vega", "The Night Owls", "Kofi Mensah"}},
		{"limit", "", 2, []string{"Luna Vega", "The Night Owls"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Search(context.Background(), tt.query, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestMemorySearcher_IndexCopies(t *testing.T) {
	artists := fixtureArtists(t)
	m := NewMemorySearcher(0)
	require.NoError(t, m.Index(context.Background(), artists))

	artists[0].Name = "Renamed"
	got, err := m.Search(context.Background(), "luna", 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestMemorySearcher_CanceledContext(t *testing.T) {
	m := NewMemorySearcher(3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Search(ctx, "luna", 5)
	assert.ErrorIs(t, err, context.Canceled)
}

// ==========================
// ElasticSearcher
// ==========================

type fakeES struct {
	mu       sync.Mutex
	indexed  []string
	lastBody map[string]interface{}
	fail     bool
}

func (f *fakeES) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")

		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case f.fail:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"error":"boom"}`)
		case strings.HasPrefix(r.URL.Path, "/artists/_doc/"):
			f.indexed = append(f.indexed, strings.TrimPrefix(r.URL.Path, "/artists/_doc/"))
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"result":"created"}`)
		case r.URL.Path == "/artists/_refresh":
			_, _ = io.WriteString(w, `{"_shards":{"total":1,"successful":1,"failed":0}}`)
		case r.URL.Path == "/artists/_search":
			body, _ := io.ReadAll(r.Body)
			assert.NoError(t, json.Unmarshal(body, &f.lastBody))
			_, _ = io.WriteString(w, `{"hits":{"total":{"value":1},"hits":[
				{"_id":"artist-1","_source":{"id":"artist-1","name":"Luna Vega","subscriptionsEnabled":true}}
			]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestElasticSearcher(t *testing.T, fake *fakeES) *ElasticSearcher {
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)
	return NewElasticSearcher(client, "artists")
}

func TestElasticSearcher_IndexAndSearch(t *testing.T) {
	fake := &fakeES{}
	es := newTestElasticSearcher(t, fake)
	ctx := context.Background()

	require.NoError(t, es.Index(ctx, fixtureArtists(t)))
	assert.Equal(t, []string{"artist-1", "artist-2", "artist-3", "artist-4"}, fake.indexed)

	got, err := es.Search(ctx, "luna", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Luna Vega"}, names(got))

	query := fake.lastBody["query"].(map[string]interface{})
	mm := query["multi_match"].(map[string]interface{})
	assert.Equal(t, "luna", mm["query"])
	assert.Equal(t, []interface{}{"name^3", "genre", "bio"}, mm["fields"])
	assert.Equal(t, float64(5), fake.lastBody["size"])
}

func TestElasticSearcher_EmptyQueryFiltersEnabled(t *testing.T) {
	fake := &fakeES{}
	es := newTestElasticSearcher(t, fake)

	_, err := es.Search(context.Background(), "", 0)
	require.NoError(t, err)

	query := fake.lastBody["query"].(map[string]interface{})
	assert.Contains(t, query, "bool")
	assert.Equal(t, float64(DefaultLimit), fake.lastBody["size"])
}

func TestElasticSearcher_ErrorResponse(t *testing.T) {
	fake := &fakeES{fail: true}
	es := newTestElasticSearcher(t, fake)

	_, err := es.Search(context.Background(), "luna", 5)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSearchQueryFailed))
}
