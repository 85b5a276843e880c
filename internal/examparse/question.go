package examparse

// QuestionType distinguishes multiple-choice questions from free-form ones.
type QuestionType string

const (
	TypeChoice QuestionType = "choice"
	TypeEssay  QuestionType = "essay"
)

// DefaultTopic is assigned to every parsed question; classification happens
// downstream, never in the parser.
const DefaultTopic = "未分類"

// Question is one parsed exam question. Option texts keep their original
// "(n)" prefix verbatim so the UI can show them exactly as printed.
type Question struct {
	Text          string       `json:"question"`
	OptionA       string       `json:"option_A"`
	OptionB       string       `json:"option_B"`
	OptionC       string       `json:"option_C"`
	OptionD       string       `json:"option_D"`
	CorrectAnswer string       `json:"correct_answer"` // "1".."4" or ""
	Explanation   string       `json:"explanation"`
	Topic         string       `json:"topic"`
	Type          QuestionType `json:"type"`
}

// Option returns the text of slot n (1..4), or "" for out-of-range slots.
func (q *Question) Option(n int) string {
	switch n {
	case 1:
		return q.OptionA
	case 2:
		return q.OptionB
	case 3:
		return q.OptionC
	case 4:
		return q.OptionD
	}
	return ""
}

func (q *Question) setOption(n int, text string) {
	switch n {
	case 1:
		q.OptionA = text
	case 2:
		q.OptionB = text
	case 3:
		q.OptionC = text
	case 4:
		q.OptionD = text
	}
}

func (q *Question) appendOption(n int, text string) {
	switch n {
	case 1:
		q.OptionA += text
	case 2:
		q.OptionB += text
	case 3:
		q.OptionC += text
	case 4:
		q.OptionD += text
	}
}

func (q *Question) optionCount() int {
	n := 0
	for i := 1; i <= 4; i++ {
		if q.Option(i) != "" {
			n++
		}
	}
	return n
}
