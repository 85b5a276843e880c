// Package bank is the persistent question store fed by PDF ingests and read
// by the quiz engine.
package bank

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"github.com/radprep/trainer/internal/examparse"
)

var ErrNotFound = errors.New("question not found")

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Topic string
	Type  string
}

// Store holds parsed questions keyed by their verbatim text. Upsert keeps the
// most recent parse on conflict.
type Store interface {
	Upsert(ctx context.Context, qs []examparse.Question) (int, error)
	Get(ctx context.Context, text string) (examparse.Question, error)
	List(ctx context.Context, f Filter) ([]examparse.Question, error)
	Count(ctx context.Context) (int, error)
	// Sample returns up to n random multiple-choice questions with an
	// answer key; essays are never served as quiz items.
	Sample(ctx context.Context, n int) ([]examparse.Question, error)
	Topics(ctx context.Context) ([]string, error)
}

type memoryStore struct {
	mu        sync.RWMutex
	questions map[string]examparse.Question
	order     []string
}

func NewInMemoryStore() Store {
	return &memoryStore{questions: map[string]examparse.Question{}}
}

func (m *memoryStore) Upsert(_ context.Context, qs []examparse.Question) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, q := range qs {
		if q.Text == "" {
			continue
		}
		if _, ok := m.questions[q.Text]; !ok {
			m.order = append(m.order, q.Text)
		}
		m.questions[q.Text] = q
		n++
	}
	return n, nil
}

func (m *memoryStore) Get(_ context.Context, text string) (examparse.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.questions[text]
	if !ok {
		return examparse.Question{}, ErrNotFound
	}
	return q, nil
}

func (m *memoryStore) List(_ context.Context, f Filter) ([]examparse.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []examparse.Question{}
	for _, text := range m.order {
		q := m.questions[text]
		if f.Topic != "" && q.Topic != f.Topic {
			continue
		}
		if f.Type != "" && string(q.Type) != f.Type {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (m *memoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.questions), nil
}

func (m *memoryStore) Sample(_ context.Context, n int) ([]examparse.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pool := make([]examparse.Question, 0, len(m.order))
	for _, text := range m.order {
		q := m.questions[text]
		if q.Type == examparse.TypeChoice && q.OptionA != "" {
			pool = append(pool, q)
		}
	}
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n], nil
}

func (m *memoryStore) Topics(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := map[string]bool{}
	out := []string{}
	for _, text := range m.order {
		if t := m.questions[text].Topic; t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out, nil
}
