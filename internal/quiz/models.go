package quiz

import "github.com/radprep/trainer/internal/examparse"

// Practice modes, recorded with every answer.
const (
	ModeBatch  = "batch"  // mock exam
	ModeSingle = "single" // one-question practice
)

// Score is one finished mock exam.
type Score struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	TakenAt int64  `json:"taken_at"`
	Score   int    `json:"score"`
	Total   int    `json:"total"`
	Percent int    `json:"percent"`
}

// Record is one answered question, right or wrong. The mistake book is built
// from these.
type Record struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	TakenAt       int64  `json:"taken_at"`
	Mode          string `json:"mode"`
	Question      string `json:"question"`
	Topic         string `json:"topic"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// Session is an in-flight mock exam. Questions handed to the client have
// their answer key and explanation stripped; the full versions stay
// server-side until submit.
type Session struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id"`
	CreatedAt int64                `json:"created_at"`
	Questions []examparse.Question `json:"questions"`
}

// ItemResult is the graded outcome for one question of a session.
type ItemResult struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation"`
}

// SessionResult is the graded outcome of a whole session.
type SessionResult struct {
	SessionID string       `json:"session_id"`
	Score     int          `json:"score"`
	Total     int          `json:"total"`
	Percent   int          `json:"percent"`
	Items     []ItemResult `json:"items"`
}
