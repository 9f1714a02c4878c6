package services

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Blade Runner", "blade-runner"},
		{"punctuation runs", "2001: A Space Odyssey", "2001-a-space-odyssey"},
		{"leading and trailing", "  The Wire!  ", "the-wire"},
		{"mixed case", "BoJack Horseman", "bojack-horseman"},
		{"only symbols", "???", "item"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := slugify(tc.title); got != tc.want {
				t.Fatalf("slugify(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}
