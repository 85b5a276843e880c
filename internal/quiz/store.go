package quiz

import (
	"context"
	"sort"
	"sync"
)

// RecordStore persists scores and per-question answer records.
type RecordStore interface {
	AddScore(ctx context.Context, s Score) error
	AddRecords(ctx context.Context, rs []Record) error
	ScoresByUser(ctx context.Context, userID string) ([]Score, error)
	// Mistakes returns the user's wrong answers, keeping only the most
	// recent record per question: a question later answered correctly
	// leaves the mistake book.
	Mistakes(ctx context.Context, userID string) ([]Record, error)
}

type memoryRecordStore struct {
	mu      sync.RWMutex
	scores  []Score
	records []Record
}

func NewInMemoryRecordStore() RecordStore {
	return &memoryRecordStore{}
}

func (m *memoryRecordStore) AddScore(_ context.Context, s Score) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, s)
	return nil
}

func (m *memoryRecordStore) AddRecords(_ context.Context, rs []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rs...)
	return nil
}

func (m *memoryRecordStore) ScoresByUser(_ context.Context, userID string) ([]Score, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Score{}
	for _, s := range m.scores {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TakenAt > out[j].TakenAt })
	return out, nil
}

func (m *memoryRecordStore) Mistakes(_ context.Context, userID string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	latest := map[string]Record{}
	for _, r := range m.records {
		if r.UserID != userID {
			continue
		}
		if prev, ok := latest[r.Question]; !ok || r.TakenAt >= prev.TakenAt {
			latest[r.Question] = r
		}
	}
	out := []Record{}
	for _, r := range latest {
		if !r.IsCorrect {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TakenAt > out[j].TakenAt })
	return out, nil
}
