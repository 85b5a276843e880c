package bank

import (
	"context"
	"io"
	"strings"
	"testing"
)

type fakeExtractor struct{ text string }

func (f fakeExtractor) Extract(_ context.Context, _ io.Reader) (string, error) {
	return f.text, nil
}
func (f fakeExtractor) ExtractPath(_ context.Context, _ string) (string, error) {
	return f.text, nil
}

func TestIngestPDF(t *testing.T) {
	ctx := context.Background()
	text := strings.Join([]string{
		"1. 第一題",
		"(1)甲 (2)乙 (3)丙 (4)丁",
		"[解:](2)",
		"第1頁/共1頁",
		"2. 第二題",
		"(1)a",
		"(2)b",
		"(3)c",
		"(4)d",
		"[解]",
		"(4)",
	}, "\n")

	store := NewInMemoryStore()
	ing := NewIngestor(fakeExtractor{text: text}, store)

	sum, err := ing.IngestPDF(ctx, strings.NewReader("%PDF-fake"))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if sum.Parsed != 2 || sum.Upserted != 2 {
		t.Errorf("summary = %+v, want 2/2", sum)
	}

	q, err := store.Get(ctx, "1. 第一題")
	if err != nil {
		t.Fatal(err)
	}
	if q.CorrectAnswer != "2" {
		t.Errorf("correct answer = %q", q.CorrectAnswer)
	}
}

func TestIngestTextEmpty(t *testing.T) {
	ing := NewIngestor(fakeExtractor{}, NewInMemoryStore())
	sum, err := ing.IngestText(context.Background(), "")
	if err != nil {
		t.Fatalf("ingest empty: %v", err)
	}
	if sum.Parsed != 0 || sum.Upserted != 0 {
		t.Errorf("summary = %+v, want zeroes", sum)
	}
}

func TestIngestReimportReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	ing := NewIngestor(fakeExtractor{}, store)

	if _, err := ing.IngestText(ctx, "1. Q\n(1)a (2)b (3)c (4)d\n[解:]1"); err != nil {
		t.Fatal(err)
	}
	if _, err := ing.IngestText(ctx, "1. Q\n(1)a (2)b (3)c (4)d\n[解:]3"); err != nil {
		t.Fatal(err)
	}

	q, err := store.Get(ctx, "1. Q")
	if err != nil {
		t.Fatal(err)
	}
	if q.CorrectAnswer != "3" {
		t.Errorf("correct answer = %q, want re-import to win", q.CorrectAnswer)
	}
	if n, _ := store.Count(ctx); n != 1 {
		t.Errorf("count = %d, want deduplicated 1", n)
	}
}
