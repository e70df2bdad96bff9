package sectionproducer

import "testing"

func TestExtractJSONArrayStripsProse(t *testing.T) {
	cases := map[string]string{
		`["a", "b"]`:                          `["a", "b"]`,
		"Here you go:\n[\"a\", \"b\"]\nthanks": `["a", "b"]`,
		"no array here":                       "no array here",
	}
	for in, want := range cases {
		if got := extractJSONArray(in); got != want {
			t.Errorf("extractJSONArray(%q) = %q, want %q", in, got, want)
		}
	}
}
