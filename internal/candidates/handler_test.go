package candidates

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"candidate-backend/internal/history"
	"candidate-backend/internal/llm"
	"candidate-backend/internal/match"
	"candidate-backend/internal/ner"
	"candidate-backend/internal/profile"
	"candidate-backend/internal/segment"
	"candidate-backend/internal/shared/storage/object"
	localstore "candidate-backend/internal/shared/storage/object/local"
	"candidate-backend/internal/vacancies"
)

type fakeRecognizer struct{}

func (fakeRecognizer) Entities(string) ([]ner.Entity, error) {
	return []ner.Entity{{Text: "Иван Иванов", Kind: ner.Person}}, nil
}

type stubLLM struct{}

func (stubLLM) Generate(_ context.Context, input llm.GenerateInput) (string, error) {
	title := "Go-разработчик"
	if !strings.Contains(input.Prompt, title) {
		return "", errors.New("unexpected prompt")
	}
	return fmt.Sprintf(`{"vacancy": %q, "percentage": 80, "explaining": "подходит", "recommendations": ""}`, title), nil
}

type failingStore struct{}

func (failingStore) Save(context.Context, string, io.Reader) (string, int64, error) {
	return "", 0, errors.New("disk full")
}

func (failingStore) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("disk full")
}

func testCatalog(t *testing.T) *vacancies.Catalog {
	t.Helper()
	raw := `{"1": {"название": "Go-разработчик", "компетенции": {"Базовые": [{"название": "Go", "уровень": 3}]}}}`
	catalog, err := vacancies.Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("catalog parse: %v", err)
	}
	return catalog
}

func testRouter(t *testing.T, store object.ObjectStore, repo history.Repo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &Handler{
		Builder: &profile.Builder{
			Segmenter:  segment.Default(),
			Recognizer: fakeRecognizer{},
			Language:   "ru",
		},
		Engine:  &match.Engine{LLM: stubLLM{}},
		Catalog: testCatalog(t),
		Store:   store,
		History: repo,
	}

	r := gin.New()
	h.RegisterRoutes(r.Group("/"))
	return r
}

func multipartBody(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

// typedMultipartBody builds a multipart body whose file part carries an
// explicit Content-Type header, unlike CreateFormFile which always writes
// application/octet-stream.
func typedMultipartBody(t *testing.T, fileName, partType, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	header.Set("Content-Type", partType)
	fw, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

const resumeText = "Иван Иванов\nivan@example.com\nНавыки\ngolang postgresql\nОпыт работы\nразработка сервисов"

func TestMatchEndpointSuccess(t *testing.T) {
	repo := history.NewMemoryRepo()
	r := testRouter(t, localstore.New(t.TempDir()), repo)

	body, contentType := multipartBody(t, "resume.txt", resumeText)
	req := httptest.NewRequest(http.MethodPost, "/candidate_match", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var result match.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Vacancy != "Go-разработчик" || result.Percentage != 80 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.FullName != "Иван Иванов" {
		t.Fatalf("full name = %q", result.FullName)
	}
	if result.Email != "ivan@example.com" {
		t.Fatalf("email = %q", result.Email)
	}

	records, err := repo.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(records) != 1 || records[0].Vacancy != "Go-разработчик" {
		t.Fatalf("history records = %+v", records)
	}
}

func TestMatchEndpointMissingFile(t *testing.T) {
	r := testRouter(t, localstore.New(t.TempDir()), history.NewMemoryRepo())

	req := httptest.NewRequest(http.MethodPost, "/candidate_match", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var envelope map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope["error"] == "" {
		t.Fatalf("expected error envelope, got %s", w.Body.String())
	}
}

func TestMatchEndpointUnsupportedFormat(t *testing.T) {
	r := testRouter(t, localstore.New(t.TempDir()), history.NewMemoryRepo())

	body, contentType := multipartBody(t, "resume.exe", "binary")
	req := httptest.NewRequest(http.MethodPost, "/candidate_match", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "unsupported file type: .exe") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestMatchEndpointPartContentTypeFallback(t *testing.T) {
	r := testRouter(t, localstore.New(t.TempDir()), history.NewMemoryRepo())

	// No extension on the file name; dispatch must fall back to the file
	// part's declared type, not the request's multipart/form-data.
	body, contentType := typedMultipartBody(t, "resume", "text/plain", resumeText)
	req := httptest.NewRequest(http.MethodPost, "/candidate_match", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestMatchEndpointStoreFailure(t *testing.T) {
	r := testRouter(t, failingStore{}, history.NewMemoryRepo())

	body, contentType := multipartBody(t, "resume.txt", resumeText)
	req := httptest.NewRequest(http.MethodPost, "/candidate_match", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "failed to persist uploaded file") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestMatchEndpointRawBodyFallback(t *testing.T) {
	r := testRouter(t, localstore.New(t.TempDir()), history.NewMemoryRepo())

	req := httptest.NewRequest(http.MethodPost, "/candidate_match?filename=resume.txt", strings.NewReader(resumeText))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestRecentEndpoint(t *testing.T) {
	repo := history.NewMemoryRepo()
	if err := repo.Create(context.Background(), history.Record{ID: "r1", Vacancy: "Go-разработчик", Percentage: 80}); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	r := testRouter(t, localstore.New(t.TempDir()), repo)

	req := httptest.NewRequest(http.MethodGet, "/matches", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var records []history.Record
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 1 || records[0].ID != "r1" {
		t.Fatalf("records = %+v", records)
	}
}

func TestRecentEndpointEmpty(t *testing.T) {
	r := testRouter(t, localstore.New(t.TempDir()), history.NewMemoryRepo())

	req := httptest.NewRequest(http.MethodGet, "/matches", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", w.Body.String())
	}
}
