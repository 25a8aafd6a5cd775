package utils

import "testing"

func TestSlugTag(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Acme Health", "acmehealth"},
		{" HQ-North! ", "hqnorth"},
		{"ACME1125030001", "acme1125030001"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range cases {
		if got := SlugTag(tt.in); got != tt.want {
			t.Fatalf("SlugTag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShortCodeTag(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"acme", 4, "ACME"},
		{"Acme Health Ltd", 4, "ACME"},
		{"zen", 4, "ZENX"},
		{"a-1", 4, "A1XX"},
		{"", 4, "XXXX"},
	}
	for _, tt := range cases {
		if got := ShortCodeTag(tt.in, tt.width); got != tt.want {
			t.Fatalf("ShortCodeTag(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" a@x.com , , b@x.com ")
	if len(got) != 2 || got[0] != "a@x.com" || got[1] != "b@x.com" {
		t.Fatalf("SplitList = %v", got)
	}
	if out := SplitList(""); len(out) != 0 {
		t.Fatalf("SplitList(\"\") = %v, want empty", out)
	}
}
