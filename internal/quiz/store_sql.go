package quiz

import (
	"context"
	"database/sql"
)

type SQLRecordStore struct {
	db *sql.DB
}

func NewSQLRecordStore(db *sql.DB) *SQLRecordStore {
	return &SQLRecordStore{db: db}
}

func (s *SQLRecordStore) AddScore(ctx context.Context, sc Score) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO scores (id,user_id,taken_at,score,total,percent)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		sc.ID, sc.UserID, sc.TakenAt, sc.Score, sc.Total, sc.Percent)
	return err
}

func (s *SQLRecordStore) AddRecords(ctx context.Context, rs []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, r := range rs {
		correct := 0
		if r.IsCorrect {
			correct = 1
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO records
			(id,user_id,taken_at,mode,question,topic,user_answer,correct_answer,is_correct)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			r.ID, r.UserID, r.TakenAt, r.Mode, r.Question, r.Topic,
			r.UserAnswer, r.CorrectAnswer, correct)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLRecordStore) ScoresByUser(ctx context.Context, userID string) ([]Score, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,user_id,taken_at,score,total,percent
		FROM scores WHERE user_id=$1 ORDER BY taken_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Score{}
	for rows.Next() {
		var sc Score
		if err := rows.Scan(&sc.ID, &sc.UserID, &sc.TakenAt, &sc.Score, &sc.Total, &sc.Percent); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *SQLRecordStore) Mistakes(ctx context.Context, userID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT r.id,r.user_id,r.taken_at,r.mode,r.question,r.topic,
			r.user_answer,r.correct_answer,r.is_correct
		FROM records r
		JOIN (
			SELECT question, MAX(taken_at) AS latest
			FROM records WHERE user_id=$1 GROUP BY question
		) m ON r.question=m.question AND r.taken_at=m.latest
		WHERE r.user_id=$2 AND r.is_correct=0
		ORDER BY r.taken_at DESC`, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Record{}
	for rows.Next() {
		var r Record
		var correct int
		if err := rows.Scan(&r.ID, &r.UserID, &r.TakenAt, &r.Mode, &r.Question, &r.Topic,
			&r.UserAnswer, &r.CorrectAnswer, &correct); err != nil {
			return nil, err
		}
		r.IsCorrect = correct != 0
		out = append(out, r)
	}
	return out, rows.Err()
}
