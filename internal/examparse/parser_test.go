package examparse

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseSingleQuestion(t *testing.T) {
	text := "1. What is X?\n(1)A\n(2)B\n(3)C\n(4)D\n[解:] (2)\n解析內容"
	qs := Parse(text)
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	q := qs[0]
	if q.Text != "1. What is X?" {
		t.Errorf("text = %q", q.Text)
	}
	for i, want := range []string{"(1)A", "(2)B", "(3)C", "(4)D"} {
		if got := q.Option(i + 1); got != want {
			t.Errorf("option %d = %q, want %q", i+1, got, want)
		}
	}
	if q.CorrectAnswer != "2" {
		t.Errorf("correct answer = %q, want 2", q.CorrectAnswer)
	}
	if q.Explanation != "解析內容\n" {
		t.Errorf("explanation = %q", q.Explanation)
	}
	if q.Type != TypeChoice {
		t.Errorf("type = %q", q.Type)
	}
	if q.Topic != DefaultTopic {
		t.Errorf("topic = %q", q.Topic)
	}
}

func TestParsePackedOptionsAndDeferredAnswer(t *testing.T) {
	text := "1. Q\n(1)A (2)B (3)C (4)D\n[解]\n(3)\n"
	qs := Parse(text)
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	q := qs[0]
	for i, want := range []string{"(1)A", "(2)B", "(3)C", "(4)D"} {
		if got := q.Option(i + 1); got != want {
			t.Errorf("option %d = %q, want %q", i+1, got, want)
		}
	}
	if q.CorrectAnswer != "3" {
		t.Errorf("correct answer = %q, want 3", q.CorrectAnswer)
	}
	// The answer line is kept in the explanation verbatim.
	if q.Explanation != "(3)\n" {
		t.Errorf("explanation = %q", q.Explanation)
	}
}

func TestParseEssayReclassification(t *testing.T) {
	text := "5. Pick\n(1)Only\n(2)Two\n[解:](1)"
	qs := Parse(text)
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	q := qs[0]
	if q.Type != TypeEssay {
		t.Errorf("type = %q, want essay", q.Type)
	}
	if q.CorrectAnswer != "" {
		t.Errorf("correct answer = %q, want empty", q.CorrectAnswer)
	}
	for i := 1; i <= 4; i++ {
		if q.Option(i) != "" {
			t.Errorf("option %d = %q, want empty", i, q.Option(i))
		}
	}
	if q.Explanation != "(1)Only\n(2)Two" {
		t.Errorf("explanation = %q", q.Explanation)
	}
}

func TestParseDropsPageFooter(t *testing.T) {
	text := "1. Q\n(1)a\n第3頁/共10頁\n(2)b\n(3)c\n(4)d\n[解:]1"
	qs := Parse(text)
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	all := qs[0].Text + qs[0].OptionA + qs[0].OptionB + qs[0].OptionC + qs[0].OptionD + qs[0].Explanation
	if strings.Contains(all, "第3頁") {
		t.Errorf("footer leaked into output: %q", all)
	}
}

func TestParseEmptyInput(t *testing.T) {
	if qs := Parse(""); len(qs) != 0 {
		t.Errorf("empty input: got %d questions", len(qs))
	}
	if qs := Parse("\n  \n\t\n"); len(qs) != 0 {
		t.Errorf("blank input: got %d questions", len(qs))
	}
}

func TestParseMultiLineStem(t *testing.T) {
	text := "1. 下列有關輻射劑量的敘述\n何者正確？\n(1)甲 (2)乙 (3)丙 (4)丁\n[解:]4"
	qs := Parse(text)
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	want := "1. 下列有關輻射劑量的敘述 何者正確？"
	if qs[0].Text != want {
		t.Errorf("text = %q, want %q", qs[0].Text, want)
	}
	if qs[0].CorrectAnswer != "4" {
		t.Errorf("correct answer = %q", qs[0].CorrectAnswer)
	}
}

func TestParseWrappedOptionContinuation(t *testing.T) {
	text := "1. Q\n(1)短\n(2)很長的選項文字\n換行後的尾巴\n(3)丙\n(4)丁\n[解:]2"
	qs := Parse(text)
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	if got, want := qs[0].OptionB, "(2)很長的選項文字 換行後的尾巴"; got != want {
		t.Errorf("option 2 = %q, want %q", got, want)
	}
	if qs[0].OptionC != "(3)丙" {
		t.Errorf("option 3 = %q", qs[0].OptionC)
	}
}

func TestParseDuplicateMarkerOverwrites(t *testing.T) {
	text := "1. Q\n(1)first\n(1)second\n(2)b\n(3)c\n(4)d\n[解:]1"
	qs := Parse(text)
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	if qs[0].OptionA != "(1)second" {
		t.Errorf("option 1 = %q, want re-parse to win", qs[0].OptionA)
	}
}

func TestParseLateAnswerRecoveryInExplanation(t *testing.T) {
	text := "1. Q\n(1)a (2)b (3)c (4)d\n[解：]\n詳見教材\n正確答案為(2)，因為劑量率與距離平方成反比"
	qs := Parse(text)
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	if qs[0].CorrectAnswer != "2" {
		t.Errorf("correct answer = %q, want late recovery to find 2", qs[0].CorrectAnswer)
	}
	if !strings.Contains(qs[0].Explanation, "詳見教材\n") {
		t.Errorf("explanation lost the waiting line: %q", qs[0].Explanation)
	}
}

func TestParseFirstAnswerWins(t *testing.T) {
	text := "1. Q\n(1)a\n(2)b\n(3)c\n(4)d\n[解:](3)\n另一處寫(1)僅為引用"
	qs := Parse(text)
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	if qs[0].CorrectAnswer != "3" {
		t.Errorf("correct answer = %q, want first match to stick", qs[0].CorrectAnswer)
	}
}

func TestParseTagWithTrailingExplanation(t *testing.T) {
	text := "1. Q\n(1)a\n(2)b\n(3)c\n(4)d\n[解:] (2) 因為半衰期較短"
	qs := Parse(text)
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	if qs[0].CorrectAnswer != "2" {
		t.Errorf("correct answer = %q", qs[0].CorrectAnswer)
	}
	if qs[0].Explanation != "因為半衰期較短\n" {
		t.Errorf("explanation = %q", qs[0].Explanation)
	}
}

func TestParseQuestionWithoutOptionsIsEssay(t *testing.T) {
	text := "1. 試述游離輻射之生物效應。\n[解:]\n參考課本第三章"
	qs := Parse(text)
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	if qs[0].Type != TypeEssay {
		t.Errorf("type = %q, want essay", qs[0].Type)
	}
	if qs[0].CorrectAnswer != "" {
		t.Errorf("correct answer = %q, want empty", qs[0].CorrectAnswer)
	}
}

func TestParseMultipleQuestions(t *testing.T) {
	text := strings.Join([]string{
		"頁首雜訊",
		"1. 第一題",
		"(1)a (2)b (3)c (4)d",
		"[解:]1",
		"2. 第二題",
		"(1)w",
		"(2)x",
		"(3)y",
		"(4)z",
		"[解]",
		"(4)",
		"補充說明",
		"3 第三題（題號後為空白）",
		"(1)p (2)q (3)r (4)s",
		"[解:](2)",
	}, "\n")
	qs := Parse(text)
	if len(qs) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(qs))
	}
	if qs[0].CorrectAnswer != "1" || qs[1].CorrectAnswer != "4" || qs[2].CorrectAnswer != "2" {
		t.Errorf("answers = %q %q %q", qs[0].CorrectAnswer, qs[1].CorrectAnswer, qs[2].CorrectAnswer)
	}
	if !strings.Contains(qs[1].Explanation, "補充說明\n") {
		t.Errorf("explanation of q2 = %q", qs[1].Explanation)
	}
	// Header noise before the first question must not leak anywhere.
	for i, q := range qs {
		if strings.Contains(q.Text+q.Explanation, "頁首雜訊") {
			t.Errorf("question %d absorbed pre-question noise", i+1)
		}
	}
}

func TestParseEmitsEveryOpenedQuestion(t *testing.T) {
	// The last question has no answer section at all; it must still flush.
	text := "1. 完整題\n(1)a (2)b (3)c (4)d\n[解:]1\n2. 未完結的題目"
	qs := Parse(text)
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[1].Text != "2. 未完結的題目" {
		t.Errorf("tail question text = %q", qs[1].Text)
	}
	if qs[1].Type != TypeEssay {
		t.Errorf("tail question type = %q, want essay", qs[1].Type)
	}
}

func TestParseMissingAnswerStillEmitted(t *testing.T) {
	text := "1. Q\n(1)a\n(2)b\n(3)c\n(4)d"
	qs := Parse(text)
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	if qs[0].CorrectAnswer != "" {
		t.Errorf("correct answer = %q, want empty", qs[0].CorrectAnswer)
	}
	if qs[0].Type != TypeChoice {
		t.Errorf("type = %q, want choice", qs[0].Type)
	}
}

func TestParseIdempotent(t *testing.T) {
	text := "1. Q\n(1)a (2)b\n(3)c\n(4)d\n[解:] (2)\n解析"
	a := Parse(text)
	b := Parse(text)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("parse is not idempotent:\n%v\n%v", a, b)
	}
}
