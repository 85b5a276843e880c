// Package quiz runs mock exams and single-question practice against the
// question bank and keeps the per-user score history and mistake book.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/radprep/trainer/internal/bank"
	"github.com/radprep/trainer/internal/examparse"
	"github.com/radprep/trainer/internal/grading"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrBankEmpty       = errors.New("question bank has no quizzable questions")
)

// Leaderboard receives best-percent updates on submit. Implementations may be
// absent entirely; the service treats it as optional.
type Leaderboard interface {
	UpdateBest(ctx context.Context, userID string, percent int) error
}

type Option func(*Service)

func WithLeaderboard(lb Leaderboard) Option {
	return func(s *Service) { s.board = lb }
}

// WithSizeBounds sets the allowed mock-exam size range.
func WithSizeBounds(min, max int) Option {
	return func(s *Service) { s.minQuestions, s.maxQuestions = min, max }
}

type Service struct {
	bank    bank.Store
	records RecordStore
	grader  grading.Grader
	board   Leaderboard

	minQuestions int
	maxQuestions int

	mu       sync.Mutex
	sessions map[string]Session
}

func NewService(b bank.Store, r RecordStore, g grading.Grader, opts ...Option) *Service {
	s := &Service{
		bank:         b,
		records:      r,
		grader:       g,
		minQuestions: 1,
		maxQuestions: 20,
		sessions:     map[string]Session{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// StartSession samples n choice questions and opens a session. The returned
// copy has answer keys and explanations stripped; the full questions stay
// server-side until submit.
func (s *Service) StartSession(ctx context.Context, userID string, n int) (Session, error) {
	if n < s.minQuestions {
		n = s.minQuestions
	}
	if n > s.maxQuestions {
		n = s.maxQuestions
	}
	qs, err := s.bank.Sample(ctx, n)
	if err != nil {
		return Session{}, fmt.Errorf("sample questions: %w", err)
	}
	if len(qs) == 0 {
		return Session{}, ErrBankEmpty
	}

	sess := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().Unix(),
		Questions: qs,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sanitized(sess), nil
}

// Submit grades a session's answers (keyed by verbatim question text), writes
// one score row and one record per question, and closes the session. Sessions
// can only be submitted by the user who opened them.
func (s *Service) Submit(ctx context.Context, userID, sessionID string, answers map[string]string) (SessionResult, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok && sess.UserID == userID {
		delete(s.sessions, sessionID)
	} else {
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return SessionResult{}, ErrSessionNotFound
	}

	now := time.Now().Unix()
	res := SessionResult{SessionID: sess.ID, Total: len(sess.Questions)}
	recs := make([]Record, 0, len(sess.Questions))
	for _, q := range sess.Questions {
		gr := s.grader.Grade(q, answers[q.Text])
		if gr.Correct {
			res.Score++
		}
		res.Items = append(res.Items, ItemResult{
			Question:      q.Text,
			UserAnswer:    gr.UserAnswer,
			CorrectAnswer: gr.CorrectAnswer,
			Correct:       gr.Correct,
			Explanation:   q.Explanation,
		})
		recs = append(recs, Record{
			ID:            uuid.NewString(),
			UserID:        sess.UserID,
			TakenAt:       now,
			Mode:          ModeBatch,
			Question:      q.Text,
			Topic:         q.Topic,
			UserAnswer:    gr.UserAnswer,
			CorrectAnswer: gr.CorrectAnswer,
			IsCorrect:     gr.Correct,
		})
	}
	if res.Total > 0 {
		res.Percent = res.Score * 100 / res.Total
	}

	if err := s.records.AddScore(ctx, Score{
		ID:      uuid.NewString(),
		UserID:  sess.UserID,
		TakenAt: now,
		Score:   res.Score,
		Total:   res.Total,
		Percent: res.Percent,
	}); err != nil {
		return SessionResult{}, fmt.Errorf("save score: %w", err)
	}
	if err := s.records.AddRecords(ctx, recs); err != nil {
		return SessionResult{}, fmt.Errorf("save records: %w", err)
	}
	if s.board != nil {
		// Best effort: a cache outage must not fail a submitted exam.
		_ = s.board.UpdateBest(ctx, sess.UserID, res.Percent)
	}
	return res, nil
}

// PracticeAnswer grades one question outside a session and records it with
// mode "single".
func (s *Service) PracticeAnswer(ctx context.Context, userID, questionText, answer string) (ItemResult, error) {
	q, err := s.bank.Get(ctx, questionText)
	if err != nil {
		return ItemResult{}, err
	}
	gr := s.grader.Grade(q, answer)
	rec := Record{
		ID:            uuid.NewString(),
		UserID:        userID,
		TakenAt:       time.Now().Unix(),
		Mode:          ModeSingle,
		Question:      q.Text,
		Topic:         q.Topic,
		UserAnswer:    gr.UserAnswer,
		CorrectAnswer: gr.CorrectAnswer,
		IsCorrect:     gr.Correct,
	}
	if err := s.records.AddRecords(ctx, []Record{rec}); err != nil {
		return ItemResult{}, fmt.Errorf("save record: %w", err)
	}
	return ItemResult{
		Question:      q.Text,
		UserAnswer:    gr.UserAnswer,
		CorrectAnswer: gr.CorrectAnswer,
		Correct:       gr.Correct,
		Explanation:   q.Explanation,
	}, nil
}

func (s *Service) Mistakes(ctx context.Context, userID string) ([]Record, error) {
	return s.records.Mistakes(ctx, userID)
}

func (s *Service) ScoreHistory(ctx context.Context, userID string) ([]Score, error) {
	return s.records.ScoresByUser(ctx, userID)
}

func sanitized(sess Session) Session {
	out := sess
	out.Questions = make([]examparse.Question, len(sess.Questions))
	for i, q := range sess.Questions {
		q.CorrectAnswer = ""
		q.Explanation = ""
		out.Questions[i] = q
	}
	return out
}
