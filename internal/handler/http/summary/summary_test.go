package summary_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"content-summarizer/internal/domain/entity"
	"content-summarizer/internal/handler/http/summary"
	"content-summarizer/internal/infra/model"
	"content-summarizer/internal/infra/tokenizer"
	"content-summarizer/internal/usecase/summarize"
)

// longDocument builds a text comfortably above the minimum input length.
func longDocument(sentences int) string {
	var b strings.Builder
	for i := 0; i < sentences; i++ {
		fmt.Fprintf(&b, "Sentence number %d carries enough words to matter. ", i)
	}
	return strings.TrimSpace(b.String())
}

// memoryRepo is an in-memory SummaryRepository for handler tests.
type memoryRepo struct {
	mu        sync.Mutex
	summaries []*entity.Summary
	nextID    int64
}

func (m *memoryRepo) Create(_ context.Context, s *entity.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s.ID = m.nextID
	s.CreatedAt = time.Now()
	stored := *s
	m.summaries = append(m.summaries, &stored)
	return nil
}

func (m *memoryRepo) List(_ context.Context, offset, limit int) ([]*entity.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Newest first.
	reversed := make([]*entity.Summary, 0, len(m.summaries))
	for i := len(m.summaries) - 1; i >= 0; i-- {
		reversed = append(reversed, m.summaries[i])
	}
	if offset >= len(reversed) {
		return nil, nil
	}
	end := offset + limit
	if end > len(reversed) {
		end = len(reversed)
	}
	return reversed[offset:end], nil
}

func (m *memoryRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.summaries)), nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (*entity.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.summaries {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func newTestService(t *testing.T) *summarize.Service {
	t.Helper()
	svc, err := summarize.NewService(model.NewNoOp(0), tokenizer.NewHeuristic(0), nil)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func newTestMux(t *testing.T, repo *memoryRepo) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	deps := summary.Deps{Svc: newTestService(t)}
	if repo != nil {
		deps.Repo = repo
	}
	summary.Register(mux, deps)
	return mux
}

func postJSON(t *testing.T, mux *http.ServeMux, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCreateHandler_Summarizes(t *testing.T) {
	repo := &memoryRepo{}
	mux := newTestMux(t, repo)

	doc := longDocument(40)
	rec := postJSON(t, mux, "/summaries", map[string]string{"text": doc, "tier": "short"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID               int64   `json:"id"`
		Summary          string  `json:"summary"`
		Tier             string  `json:"tier"`
		OriginalChars    int     `json:"original_chars"`
		SummaryChars     int     `json:"summary_chars"`
		CompressionRatio float64 `json:"compression_ratio"`
		Chunks           int     `json:"chunks"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Summary == "" {
		t.Error("expected non-empty summary")
	}
	if resp.Tier != "short" {
		t.Errorf("tier = %q, want %q", resp.Tier, "short")
	}
	if resp.OriginalChars != len([]rune(doc)) {
		t.Errorf("original_chars = %d, want %d", resp.OriginalChars, len([]rune(doc)))
	}
	if resp.SummaryChars >= resp.OriginalChars {
		t.Errorf("summary (%d runes) not shorter than input (%d runes)", resp.SummaryChars, resp.OriginalChars)
	}
	if resp.CompressionRatio <= 0 {
		t.Errorf("compression_ratio = %f, want > 0", resp.CompressionRatio)
	}
	if resp.Chunks < 1 {
		t.Errorf("chunks = %d, want >= 1", resp.Chunks)
	}
	if resp.ID == 0 {
		t.Error("expected persisted record ID in response")
	}

	stored, err := repo.Get(context.Background(), resp.ID)
	if err != nil || stored == nil {
		t.Fatalf("Get(%d) = (%v, %v), want stored record", resp.ID, stored, err)
	}
	if stored.Text != resp.Summary {
		t.Error("stored text differs from returned summary")
	}
}

func TestCreateHandler_DefaultsToMediumTier(t *testing.T) {
	mux := newTestMux(t, nil)

	rec := postJSON(t, mux, "/summaries", map[string]string{"text": longDocument(40)})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Tier string `json:"tier"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Tier != "medium" {
		t.Errorf("tier = %q, want %q", resp.Tier, "medium")
	}
}

func TestCreateHandler_Rejections(t *testing.T) {
	mux := newTestMux(t, nil)

	tests := []struct {
		name string
		body map[string]string
		want int
	}{
		{name: "missing text", body: map[string]string{"tier": "short"}, want: http.StatusBadRequest},
		{name: "unknown tier", body: map[string]string{"text": longDocument(40), "tier": "huge"}, want: http.StatusBadRequest},
		{name: "too short", body: map[string]string{"text": "tiny"}, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, mux, "/summaries", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestCreateHandler_MalformedBody(t *testing.T) {
	mux := newTestMux(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/summaries", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestBatchHandler(t *testing.T) {
	mux := newTestMux(t, nil)

	docs := []string{longDocument(30), "too short", longDocument(25)}
	rec := postJSON(t, mux, "/summaries/batch", map[string]any{
		"documents": docs,
		"tier":      "short",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Results []struct {
			Index  int             `json:"index"`
			Result json.RawMessage `json:"result"`
			Error  string          `json:"error"`
		} `json:"results"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Results) != len(docs) {
		t.Fatalf("results = %d, want %d", len(resp.Results), len(docs))
	}
	if resp.Results[0].Error != "" || len(resp.Results[0].Result) == 0 {
		t.Errorf("result 0 should succeed, got error %q", resp.Results[0].Error)
	}
	if resp.Results[1].Error == "" {
		t.Error("result 1 should fail for a too-short document")
	}
	if resp.Results[2].Error != "" || len(resp.Results[2].Result) == 0 {
		t.Errorf("result 2 should succeed, got error %q", resp.Results[2].Error)
	}
}

func TestBatchHandler_EmptyDocuments(t *testing.T) {
	mux := newTestMux(t, nil)

	rec := postJSON(t, mux, "/summaries/batch", map[string]any{"documents": []string{}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestListHandler(t *testing.T) {
	repo := &memoryRepo{}
	mux := newTestMux(t, repo)

	for i := 0; i < 3; i++ {
		rec := postJSON(t, mux, "/summaries", map[string]string{"text": longDocument(30 + i)})
		if rec.Code != http.StatusOK {
			t.Fatalf("seed summary %d: status = %d", i, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/summaries?page=1&limit=2", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data  []json.RawMessage `json:"data"`
		Page  int               `json:"page"`
		Limit int               `json:"limit"`
		Total int64             `json:"total"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("data length = %d, want 2", len(resp.Data))
	}
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Total)
	}
}

func TestListHandler_InvalidPagination(t *testing.T) {
	mux := newTestMux(t, &memoryRepo{})

	for _, query := range []string{"page=0", "page=abc", "limit=0", "limit=1000"} {
		req := httptest.NewRequest(http.MethodGet, "/summaries?"+query, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %q: status = %d, want %d", query, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestListHandler_PersistenceDisabled(t *testing.T) {
	mux := newTestMux(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/summaries", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestGetHandler(t *testing.T) {
	repo := &memoryRepo{}
	mux := newTestMux(t, repo)

	created := postJSON(t, mux, "/summaries", map[string]string{"text": longDocument(30)})
	if created.Code != http.StatusOK {
		t.Fatalf("seed summary: status = %d", created.Code)
	}
	var seeded struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(created.Body).Decode(&seeded); err != nil {
		t.Fatalf("decode seed response: %v", err)
	}

	t.Run("existing record", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/summaries/%d", seeded.ID), nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var dto struct {
			ID   int64  `json:"id"`
			Tier string `json:"tier"`
			Text string `json:"text"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&dto); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if dto.ID != seeded.ID || dto.Text == "" {
			t.Errorf("dto = %+v, want record %d with text", dto, seeded.ID)
		}
	})

	t.Run("missing record", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/summaries/99999", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/summaries/abc", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}
