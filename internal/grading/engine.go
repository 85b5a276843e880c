// Package grading scores a user's answer against a stored question.
package grading

import (
	"github.com/radprep/trainer/internal/examparse"
)

// Result is the outcome of grading a single response.
type Result struct {
	Correct     bool
	NeedsManual bool
	// Normalized forms of both sides, persisted with the practice record.
	UserAnswer    string
	CorrectAnswer string
}

// Strategy grades one question type.
type Strategy interface {
	Grade(q examparse.Question, response string) Result
}

// Grader routes by question type to the right Strategy.
type Grader interface {
	Grade(q examparse.Question, response string) Result
}

type defaultGrader struct {
	strategies map[examparse.QuestionType]Strategy
}

// NewDefaultGrader installs the built-in strategies.
func NewDefaultGrader() Grader {
	return &defaultGrader{
		strategies: map[examparse.QuestionType]Strategy{
			examparse.TypeChoice: choiceStrategy{},
			examparse.TypeEssay:  essayStrategy{},
		},
	}
}

func (g *defaultGrader) Grade(q examparse.Question, response string) Result {
	s, ok := g.strategies[q.Type]
	if !ok {
		return Result{NeedsManual: true}
	}
	return s.Grade(q, response)
}

// choiceStrategy compares canonical answer keys. Both sides pass through
// NormalizeAnswer so "(2)", "２"-adjacent paren forms, and "B" all meet on the
// digit alphabet.
type choiceStrategy struct{}

func (choiceStrategy) Grade(q examparse.Question, response string) Result {
	ua := examparse.NormalizeAnswer(response)
	ca := examparse.NormalizeAnswer(q.CorrectAnswer)
	return Result{
		Correct:       ca != "" && ua == ca,
		UserAnswer:    ua,
		CorrectAnswer: ca,
	}
}

// essayStrategy never auto-grades.
type essayStrategy struct{}

func (essayStrategy) Grade(_ examparse.Question, response string) Result {
	return Result{NeedsManual: true, UserAnswer: response}
}
