package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aestallon/minesweeper/internal/scoring"
)

func newTestServer(store Store) *httptest.Server {
	return httptest.NewServer(NewServer(store, nil).Routes())
}

func seededStore() *scoring.MemoryStore {
	return scoring.NewMemoryStore(
		scoring.Entry{Player: "ann", Score: 300, Rows: 8, Cols: 8, Mines: 5},
		scoring.Entry{Player: "bob", Score: 900, Rows: 16, Cols: 16, Mines: 55},
		scoring.Entry{Player: "Ann", Score: 500, Rows: 10, Cols: 10, Mines: 10},
		scoring.Entry{Player: "cid", Score: 100, Rows: 8, Cols: 8, Mines: 5},
	)
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestTopScores(t *testing.T) {
	srv := newTestServer(seededStore())
	defer srv.Close()

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"default limit", "", []int64{900, 500, 300, 100}},
		{"limited", "?limit=2", []int64{900, 500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []entryResponse
			if code := getJSON(t, srv.URL+"/api/scores"+tt.query, &got); code != http.StatusOK {
				t.Fatalf("status = %d, want %d", code, http.StatusOK)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(got), len(tt.want))
			}
			for i, e := range got {
				if e.Score != tt.want[i] {
					t.Errorf("entry %d score = %d, want %d", i, e.Score, tt.want[i])
				}
			}
		})
	}
}

func TestTopScoresBadLimit(t *testing.T) {
	srv := newTestServer(seededStore())
	defer srv.Close()

	for _, q := range []string{"?limit=0", "?limit=-3", "?limit=abc"} {
		var body map[string]map[string]string
		if code := getJSON(t, srv.URL+"/api/scores"+q, &body); code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", q, code, http.StatusBadRequest)
		}
		if body["error"]["code"] != "INVALID_LIMIT" {
			t.Errorf("%s: error code = %q, want INVALID_LIMIT", q, body["error"]["code"])
		}
	}
}

func TestPlayerScores(t *testing.T) {
	srv := newTestServer(seededStore())
	defer srv.Close()

	var got []entryResponse
	if code := getJSON(t, srv.URL+"/api/players/ANN/scores", &got); code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Score != 500 || got[1].Score != 300 {
		t.Errorf("scores = [%d %d], want newest first [500 300]", got[0].Score, got[1].Score)
	}
	if got[0].Rows != 10 || got[0].Mines != 10 {
		t.Errorf("entry = %+v, want 10x10 with 10 mines", got[0])
	}
}

func TestPlayerBest(t *testing.T) {
	srv := newTestServer(seededStore())
	defer srv.Close()

	tests := []struct {
		name string
		want bestResponse
	}{
		{"ann", bestResponse{Player: "ann", PersonalBest: 500, Highest: 900}},
		{"newcomer", bestResponse{Player: "newcomer", PersonalBest: 0, Highest: 900}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got bestResponse
			if code := getJSON(t, srv.URL+"/api/players/"+tt.name+"/best", &got); code != http.StatusOK {
				t.Fatalf("status = %d, want %d", code, http.StatusOK)
			}
			if got != tt.want {
				t.Errorf("best = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStoreFailure(t *testing.T) {
	store := seededStore()
	store.Err = errors.New("disk on fire")
	srv := newTestServer(store)
	defer srv.Close()

	for _, path := range []string{"/api/scores", "/api/players/ann/scores", "/api/players/ann/best"} {
		var body map[string]map[string]string
		if code := getJSON(t, srv.URL+path, &body); code != http.StatusInternalServerError {
			t.Errorf("%s: status = %d, want %d", path, code, http.StatusInternalServerError)
		}
		if strings.Contains(body["error"]["message"], "disk") {
			t.Errorf("%s: internal error leaked: %q", path, body["error"]["message"])
		}
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(seededStore())
	defer srv.Close()

	for _, path := range []string{"/health", "/metrics"} {
		if code := getJSON(t, srv.URL+path, nil); code != http.StatusOK {
			t.Errorf("%s: status = %d, want %d", path, code, http.StatusOK)
		}
	}
}
