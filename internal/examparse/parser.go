// Package examparse recovers structured questions from the loosely formatted
// text of OCR-extracted exam PDFs. Input is a flat line sequence; output is an
// ordered slice of Questions. The parser is a pure function: no I/O, no shared
// state, safe to call concurrently on independent inputs.
package examparse

import (
	"regexp"
	"strings"
)

type parseState int

const (
	stateSearch parseState = iota // before the first question; noise is dropped
	stateQuestion                 // accumulating the stem
	stateOptions                  // accumulating option slots
	stateAwaitAnswer              // answer tag seen with nothing after it
	stateExplanation              // everything else until the next question
)

var (
	questionStartRe = regexp.MustCompile(`^\d+[.\s]`)
	footerRe        = regexp.MustCompile(`第\s*\d+\s*頁\s*/\s*共\s*\d+\s*頁`)
	optionMarkerRe  = regexp.MustCompile(`[（(]([1-4])[)）]`)
	answerTagRe     = regexp.MustCompile(`\[解[:：]?\]`)
	leadingKeyRe    = regexp.MustCompile(`^[（(]?([1-4A-Da-d])(?:[)）.。、:：]|\s|$)`)
	embeddedKeyRe   = regexp.MustCompile(`[（(]\s*([1-4A-Da-d])\s*[)）]`)
)

// Parse converts extracted exam text into Questions. Page footers are
// filtered everywhere; a line matching "digits then '.' or whitespace" always
// starts a new question, finalizing the previous one. Malformed input never
// produces an error: unrecognized lines land in the nearest accumulator, with
// one documented exception (an option-less line in option context when no
// option is open yet is dropped).
func Parse(text string) []Question {
	out := []Question{}
	var cur *Question
	state := stateSearch
	lastOpt := 0

	flush := func() {
		if cur == nil {
			return
		}
		finalize(cur)
		out = append(out, *cur)
		cur = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if footerRe.MatchString(line) {
			continue
		}

		// New question wins over every other classification.
		if questionStartRe.MatchString(line) {
			flush()
			cur = &Question{Text: line, Topic: DefaultTopic, Type: TypeChoice}
			state = stateQuestion
			lastOpt = 0
			continue
		}
		if cur == nil {
			// Header noise before the first question.
			continue
		}

		// The answer tag is recognized in any state once a question is open.
		if loc := answerTagRe.FindStringIndex(line); loc != nil {
			rest := strings.TrimSpace(line[loc[1]:])
			if rest == "" {
				state = stateAwaitAnswer
				continue
			}
			key, remainder := splitAnswerKey(rest)
			if key != "" && cur.CorrectAnswer == "" {
				cur.CorrectAnswer = key
			}
			if remainder != "" {
				cur.Explanation += remainder + "\n"
			}
			state = stateExplanation
			continue
		}

		switch state {
		case stateQuestion:
			if optionMarkerRe.MatchString(line) {
				lastOpt = splitPackedOptions(cur, line, state, lastOpt)
				state = stateOptions
			} else {
				cur.Text += " " + line
			}

		case stateOptions:
			if optionMarkerRe.MatchString(line) {
				lastOpt = splitPackedOptions(cur, line, state, lastOpt)
			} else if lastOpt != 0 {
				// Wrapped long option: continuation of the open slot.
				cur.appendOption(lastOpt, " "+line)
			}
			// No marker and no open option: dropped.

		case stateAwaitAnswer:
			if cur.CorrectAnswer == "" {
				cur.CorrectAnswer = NormalizeAnswer(line)
			}
			// Keep the original phrasing even when it doubles as the answer.
			cur.Explanation += line + "\n"
			state = stateExplanation

		case stateExplanation:
			cur.Explanation += line + "\n"
			if cur.CorrectAnswer == "" {
				if m := embeddedKeyRe.FindStringSubmatch(line); m != nil {
					cur.CorrectAnswer = NormalizeAnswer(m[1])
				}
			}
		}
	}
	flush()
	return out
}

// splitPackedOptions slices a line holding one or more "(n)" markers into
// per-slot chunks: each chunk runs from its marker to the next marker (the
// last to end of line) and keeps its marker prefix verbatim. A re-seen slot is
// overwritten. Text before the first marker belongs to whatever was open:
// the stem in question context, the open option in option context.
func splitPackedOptions(q *Question, line string, state parseState, openOpt int) int {
	locs := optionMarkerRe.FindAllStringSubmatchIndex(line, -1)
	if prefix := strings.TrimSpace(line[:locs[0][0]]); prefix != "" {
		switch {
		case state == stateQuestion:
			q.Text += " " + prefix
		case openOpt != 0:
			q.appendOption(openOpt, " "+prefix)
		}
	}
	last := openOpt
	for i, m := range locs {
		end := len(line)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		slot := int(line[m[2]] - '0')
		q.setOption(slot, strings.TrimSpace(line[m[0]:end]))
		last = slot
	}
	return last
}

// splitAnswerKey extracts an answer key from the text trailing an answer tag
// and returns the leftover text. The key is looked for at the start first,
// then anywhere in parenthesized form.
func splitAnswerKey(s string) (key, remainder string) {
	if m := leadingKeyRe.FindStringSubmatchIndex(s); m != nil {
		return NormalizeAnswer(s[m[2]:m[3]]), strings.TrimSpace(s[m[1]:])
	}
	if m := embeddedKeyRe.FindStringSubmatchIndex(s); m != nil {
		return NormalizeAnswer(s[m[2]:m[3]]), strings.TrimSpace(s[:m[0]] + s[m[1]:])
	}
	return "", s
}

// finalize applies the essay reclassification: with fewer than 3 recovered
// options a multiple-choice reading is not trustworthy, so option text is
// folded into the explanation and the answer key is cleared.
func finalize(q *Question) {
	if q.optionCount() >= 3 {
		return
	}
	var kept []string
	for i := 1; i <= 4; i++ {
		if o := q.Option(i); o != "" {
			kept = append(kept, o)
		}
	}
	if folded := strings.Join(kept, "\n"); folded != "" {
		if q.Explanation != "" {
			q.Explanation = folded + "\n" + q.Explanation
		} else {
			q.Explanation = folded
		}
	}
	q.OptionA, q.OptionB, q.OptionC, q.OptionD = "", "", "", ""
	q.CorrectAnswer = ""
	q.Type = TypeEssay
}
