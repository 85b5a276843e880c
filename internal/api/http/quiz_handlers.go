package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	auth "github.com/radprep/trainer/internal/auth/middleware"
	"github.com/radprep/trainer/internal/bank"
	"github.com/radprep/trainer/internal/quiz"
)

var validate = validator.New()

// POST /quiz/sessions  { "count": 10 }
func StartQuizHandler(svc *quiz.Service) http.HandlerFunc {
	type startReq struct {
		Count int `json:"count" validate:"required,min=1,max=100"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req startReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		sess, err := svc.StartSession(r.Context(), auth.SubjectFromContext(r.Context()), req.Count)
		if err != nil {
			if errors.Is(err, quiz.ErrBankEmpty) {
				http.Error(w, err.Error(), 409)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(sess)
	}
}

// POST /quiz/sessions/{sessionID}/submit  { "answers": {"<question>": "2"} }
func SubmitQuizHandler(svc *quiz.Service) http.HandlerFunc {
	type submitReq struct {
		Answers map[string]string `json:"answers" validate:"required"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		var req submitReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		res, err := svc.Submit(r.Context(), auth.SubjectFromContext(r.Context()), id, req.Answers)
		if err != nil {
			if errors.Is(err, quiz.ErrSessionNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

// POST /practice/answer  { "question": "...", "answer": "(2)" }
func PracticeAnswerHandler(svc *quiz.Service) http.HandlerFunc {
	type practiceReq struct {
		Question string `json:"question" validate:"required"`
		Answer   string `json:"answer" validate:"required"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req practiceReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		res, err := svc.PracticeAnswer(r.Context(), auth.SubjectFromContext(r.Context()), req.Question, req.Answer)
		if err != nil {
			if errors.Is(err, bank.ErrNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}
