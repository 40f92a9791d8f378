package textutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"punctuation only", ",;:()--", ""},
		{"lowercases and collapses", "  The COURT   held,\n\tthat ", "the court held that"},
		{"drops digits leaving ordinal suffixes", "the 2nd Circuit on May 3rd, 1999", "the nd circuit on may rd"},
		{"keeps inner apostrophes", "the judge's view wasn't clear", "the judge's view wasn't clear"},
		{"normalizes curly apostrophe", "the court’s order", "the court's order"},
		{"drops dangling apostrophes", "'quoted' judges' ", "quoted judges"},
		{"folds compatibility forms", "ﬁnal ＡＣＴ", "final act"},
		{"keeps non-ascii letters", "Café société", "café société"},
		{"splits hyphenated words", "well-known self-evident", "well known self evident"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		"the court held that",
		"Plaintiff's motion (Dkt. 14) is GRANTED in part; DENIED in part.",
		"  §1983 claims—see 42 U.S.C. ¶ 3 ",
		"it’s the defendants’ burden",
		"Ünïcödé   text with​spaces",
		"ﬁnal ＡＣＴ",
	}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("One. Two.. Three", ".")
	want := []string{"One", " Two", "", " Three"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("SplitSentences mismatch (-want +got):\n%s", diff)
	}

	if got := SplitSentences("no delimiter", ""); len(got) != 1 || got[0] != "no delimiter" {
		t.Fatalf("expected whole text when delimiter empty, got %v", got)
	}
}
