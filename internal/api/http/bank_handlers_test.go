package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/radprep/trainer/internal/bank"
	"github.com/radprep/trainer/internal/storage"
)

type staticExtractor struct{ text string }

func (s staticExtractor) Extract(_ context.Context, _ io.Reader) (string, error) {
	return s.text, nil
}

func (s staticExtractor) ExtractPath(_ context.Context, _ string) (string, error) {
	return s.text, nil
}

const oneQuestion = "1. Q\n(1)a (2)b (3)c (4)d\n[解:]1"

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestImportExamHandlerSanitizesFilename(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "nested", "archive")
	arc, err := storage.NewFSArchive(base)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	store := bank.NewInMemoryStore()
	ing := bank.NewIngestor(staticExtractor{text: oneQuestion}, store)

	body, contentType := multipartUpload(t, "../../../escaped.pdf", "%PDF-1.4 fake")
	req := httptest.NewRequest("POST", "/bank/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	ImportExamHandler(ing, arc)(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	keys, err := arc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 1 || !strings.HasSuffix(keys[0], "-escaped.pdf") {
		t.Fatalf("archived keys = %v, want one bare filename", keys)
	}
	if _, err := os.Stat(filepath.Join(root, "nested", "escaped.pdf")); !os.IsNotExist(err) {
		t.Error("upload escaped the archive dir")
	}
	if n, _ := store.Count(context.Background()); n != 1 {
		t.Errorf("bank count = %d, want 1", n)
	}
}

func TestReingestArchivedExam(t *testing.T) {
	arc, err := storage.NewFSArchive(t.TempDir())
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if _, err := arc.Put("20240101-exam.pdf", strings.NewReader("%PDF-1.4 fake")); err != nil {
		t.Fatalf("put: %v", err)
	}
	store := bank.NewInMemoryStore()
	ing := bank.NewIngestor(staticExtractor{text: oneQuestion}, store)

	r := chi.NewRouter()
	r.Post("/bank/archive/{key}/reingest", ReingestExamHandler(ing, arc))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/bank/archive/20240101-exam.pdf/reingest", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var sum bank.Summary
	if err := json.NewDecoder(rec.Body).Decode(&sum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sum.Parsed != 1 || sum.Upserted != 1 {
		t.Errorf("summary = %+v", sum)
	}
	if n, _ := store.Count(context.Background()); n != 1 {
		t.Errorf("bank count = %d, want 1", n)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/bank/archive/nope.pdf/reingest", nil))
	if rec.Code != 404 {
		t.Errorf("unknown key status = %d, want 404", rec.Code)
	}
}

func TestListArchiveHandler(t *testing.T) {
	arc, err := storage.NewFSArchive(t.TempDir())
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	for _, key := range []string{"a.pdf", "b.pdf"} {
		if _, err := arc.Put(key, strings.NewReader("x")); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	rec := httptest.NewRecorder()
	ListArchiveHandler(arc)(rec, httptest.NewRequest("GET", "/bank/archive", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	var keys []string
	if err := json.NewDecoder(rec.Body).Decode(&keys); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("keys = %v, want 2 entries", keys)
	}
}
