package examparse

import "strings"

// NormalizeAnswer reduces a raw answer expression to the canonical digit key
// "1".."4". Accepted inputs: bare digits, "(2)", "（2）", letters A-D in
// either case, with surrounding whitespace or trailing punctuation. Anything
// that holds no recognizable key normalizes to "", never to a default.
func NormalizeAnswer(raw string) string {
	s := strings.Map(func(r rune) rune {
		switch r {
		case '(', ')', '（', '）', ' ', '\t', '　', '.', '。', '、', ':', '：':
			return -1
		}
		return r
	}, raw)
	for _, r := range s {
		switch {
		case r >= '1' && r <= '4':
			return string(r)
		case r >= 'A' && r <= 'D':
			return string('1' + (r - 'A'))
		case r >= 'a' && r <= 'd':
			return string('1' + (r - 'a'))
		}
	}
	return ""
}
