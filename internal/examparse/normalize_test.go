package examparse

import "testing"

func TestNormalizeAnswer(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2", "2"},
		{"(2)", "2"},
		{" （2） ", "2"},
		{"(1)", "1"},
		{"4。", "4"},
		{"3、", "3"},
		{"A", "1"},
		{"b", "2"},
		{"(D)", "4"},
		{"答案為3", "3"},
		{"", ""},
		{"5", ""},
		{"無", ""},
		{"E", ""},
	}
	for _, c := range cases {
		if got := NormalizeAnswer(c.in); got != c.want {
			t.Errorf("NormalizeAnswer(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeAnswerEquivalentForms(t *testing.T) {
	forms := []string{"2", "(2)", " （2） ", "B", "b", "(B)"}
	for _, f := range forms {
		if got := NormalizeAnswer(f); got != "2" {
			t.Errorf("NormalizeAnswer(%q) = %q, want 2", f, got)
		}
	}
}
