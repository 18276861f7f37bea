package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dedupbot/dedup"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(dedup.NewService(dedup.DefaultConfig()))
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckEndpointDetectsDuplicate(t *testing.T) {
	router := newTestRouter()

	payload := CheckRequest{
		ContentID: "item1",
		Content:   "an api level duplicate detection test body",
		Metadata:  dedup.Metadata{"title": "API Test Headline"},
	}

	w := postJSON(t, router, "/api/dedup/check", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var first dedup.Result
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if first.IsDuplicate {
		t.Fatal("first check must be unique")
	}

	payload.ContentID = "item2"
	w = postJSON(t, router, "/api/dedup/check", payload)

	var second dedup.Result
	if err := json.Unmarshal(w.Body.Bytes(), &second); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !second.IsDuplicate || second.DuplicateOf != "item1" {
		t.Fatalf("expected duplicate of item1, got %+v", second)
	}
}

func TestCheckEndpointRejectsMissingFields(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/api/dedup/check", map[string]string{"content": "no id"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestBatchEndpointCounts(t *testing.T) {
	router := newTestRouter()

	payload := BatchCheckRequest{
		Items: []dedup.ContentItem{
			{ID: "a", Content: "first body about astronomy"},
			{ID: "b", Content: "first body about astronomy"},
			{ID: "c", Content: "unrelated body about carpentry"},
		},
	}

	w := postJSON(t, router, "/api/dedup/batch", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp BatchCheckResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalCount != 3 || resp.NewCount != 2 || resp.DupCount != 1 {
		t.Fatalf("unexpected counts: %+v", resp)
	}
}

func TestCountAndClearEndpoints(t *testing.T) {
	router := newTestRouter()

	postJSON(t, router, "/api/dedup/check", CheckRequest{ContentID: "item1", Content: "body"})

	req := httptest.NewRequest(http.MethodGet, "/api/dedup/count", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var count struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &count); err != nil {
		t.Fatalf("failed to decode count: %v", err)
	}
	if count.Count != 1 {
		t.Fatalf("expected count 1, got %d", count.Count)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/dedup/clear", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from clear, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/dedup/count", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if err := json.Unmarshal(w.Body.Bytes(), &count); err != nil {
		t.Fatalf("failed to decode count: %v", err)
	}
	if count.Count != 0 {
		t.Fatalf("expected count 0 after clear, got %d", count.Count)
	}
}

func TestStatsEndpoint(t *testing.T) {
	router := newTestRouter()

	postJSON(t, router, "/api/dedup/check", CheckRequest{ContentID: "item1", Content: "stats body"})
	postJSON(t, router, "/api/dedup/check", CheckRequest{ContentID: "item2", Content: "stats body"})

	req := httptest.NewRequest(http.MethodGet, "/api/dedup/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var stats dedup.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.TotalChecks != 2 || stats.Duplicates != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
