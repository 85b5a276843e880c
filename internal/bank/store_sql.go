package bank

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/radprep/trainer/internal/examparse"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Upsert(ctx context.Context, qs []examparse.Question) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	n := 0
	for _, q := range qs {
		if q.Text == "" {
			continue
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO questions
			(question,option_a,option_b,option_c,option_d,correct_answer,explanation,topic,type,imported_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			ON CONFLICT (question) DO UPDATE SET
			  option_a=EXCLUDED.option_a, option_b=EXCLUDED.option_b,
			  option_c=EXCLUDED.option_c, option_d=EXCLUDED.option_d,
			  correct_answer=EXCLUDED.correct_answer, explanation=EXCLUDED.explanation,
			  topic=EXCLUDED.topic, type=EXCLUDED.type, imported_at=EXCLUDED.imported_at`,
			q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD,
			q.CorrectAnswer, q.Explanation, q.Topic, string(q.Type), now)
		if err != nil {
			return 0, err
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *SQLStore) Get(ctx context.Context, text string) (examparse.Question, error) {
	row := s.db.QueryRowContext(ctx, selectCols+` FROM questions WHERE question=$1`, text)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return examparse.Question{}, ErrNotFound
	}
	return q, err
}

func (s *SQLStore) List(ctx context.Context, f Filter) ([]examparse.Question, error) {
	query := selectCols + ` FROM questions`
	args := []any{}
	switch {
	case f.Topic != "" && f.Type != "":
		query += ` WHERE topic=$1 AND type=$2`
		args = append(args, f.Topic, f.Type)
	case f.Topic != "":
		query += ` WHERE topic=$1`
		args = append(args, f.Topic)
	case f.Type != "":
		query += ` WHERE type=$1`
		args = append(args, f.Type)
	}
	query += ` ORDER BY imported_at, question`
	return s.query(ctx, query, args...)
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n)
	return n, err
}

func (s *SQLStore) Sample(ctx context.Context, n int) ([]examparse.Question, error) {
	// RANDOM() is understood by both sqlite and postgres.
	return s.query(ctx, selectCols+` FROM questions
		WHERE type='choice' AND option_a<>'' ORDER BY RANDOM() LIMIT $1`, n)
}

func (s *SQLStore) Topics(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT topic FROM questions WHERE topic<>'' ORDER BY topic`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

const selectCols = `SELECT question,option_a,option_b,option_c,option_d,correct_answer,explanation,topic,type`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(r rowScanner) (examparse.Question, error) {
	var q examparse.Question
	var typ string
	err := r.Scan(&q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
		&q.CorrectAnswer, &q.Explanation, &q.Topic, &typ)
	q.Type = examparse.QuestionType(typ)
	return q, err
}

func (s *SQLStore) query(ctx context.Context, query string, args ...any) ([]examparse.Question, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []examparse.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
