package bank

import (
	"context"
	"fmt"
	"io"

	"github.com/radprep/trainer/internal/examparse"
	"github.com/radprep/trainer/internal/pdftext"
)

// Summary reports what an ingest run produced.
type Summary struct {
	Parsed   int `json:"parsed"`
	Upserted int `json:"upserted"`
}

// Ingestor turns uploaded exam PDFs into stored questions: extract text,
// parse, merge into the bank.
type Ingestor struct {
	extractor pdftext.Extractor
	store     Store
}

func NewIngestor(ex pdftext.Extractor, store Store) *Ingestor {
	return &Ingestor{extractor: ex, store: store}
}

func (i *Ingestor) IngestPDF(ctx context.Context, r io.Reader) (Summary, error) {
	text, err := i.extractor.Extract(ctx, r)
	if err != nil {
		return Summary{}, fmt.Errorf("extract text: %w", err)
	}
	return i.IngestText(ctx, text)
}

// IngestText parses already-extracted text and merges the result. The parser
// itself never fails; an empty summary just means no question lines matched.
func (i *Ingestor) IngestText(ctx context.Context, text string) (Summary, error) {
	qs := examparse.Parse(text)
	if len(qs) == 0 {
		return Summary{}, nil
	}
	n, err := i.store.Upsert(ctx, qs)
	if err != nil {
		return Summary{}, fmt.Errorf("store questions: %w", err)
	}
	return Summary{Parsed: len(qs), Upserted: n}, nil
}
