package http

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/radprep/trainer/internal/bank"
	"github.com/radprep/trainer/internal/storage"
)

// POST /bank/import (multipart: file=exam.pdf)
// The original upload is archived before parsing so it can be re-ingested
// later; a nil archive skips that step.
func ImportExamHandler(ing *bank.Ingestor, arc storage.Archive) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", 400)
			return
		}
		defer f.Close()

		if arc != nil {
			// The client picks the filename, never the path.
			name := filepath.Base(hdr.Filename)
			if name == "." || name == string(filepath.Separator) {
				name = "exam.pdf"
			}
			key := time.Now().Format("20060102150405") + "-" + name
			if _, err := arc.Put(key, f); err != nil {
				http.Error(w, "archive: "+err.Error(), 500)
				return
			}
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
		}

		sum, err := ing.IngestPDF(r.Context(), f)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		_ = json.NewEncoder(w).Encode(sum)
	}
}

// GET /bank/archive — keys of the archived exam uploads.
func ListArchiveHandler(arc storage.Archive) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keys, err := arc.List()
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(keys)
	}
}

// POST /bank/archive/{key}/reingest — re-parse an archived exam, e.g. after a
// parser fix, and merge the result into the bank.
func ReingestExamHandler(ing *bank.Ingestor, arc storage.Archive) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc, err := arc.Get(chi.URLParam(r, "key"))
		if err != nil {
			http.Error(w, "archived exam not found", 404)
			return
		}
		defer rc.Close()

		sum, err := ing.IngestPDF(r.Context(), rc)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		_ = json.NewEncoder(w).Encode(sum)
	}
}

// GET /bank/questions?topic=&type=
func ListQuestionsHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := bank.Filter{
			Topic: r.URL.Query().Get("topic"),
			Type:  r.URL.Query().Get("type"),
		}
		qs, err := store.List(r.Context(), f)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(qs)
	}
}

// GET /bank/topics
func TopicsHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topics, err := store.Topics(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(topics)
	}
}
