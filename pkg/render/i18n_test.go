package render_test

import (
	"testing"

	"github.com/goliatone/go-hotelsite/pkg/render"
)

func TestLanguageToggle(t *testing.T) {
	cases := []struct {
		in, normalized, toggled string
	}{
		{"", render.LanguageEN, render.LanguageBN},
		{"EN", render.LanguageEN, render.LanguageBN},
		{" bn ", render.LanguageBN, render.LanguageEN},
		{"fr", render.LanguageEN, render.LanguageBN},
	}
	for _, tc := range cases {
		if got := render.NormalizeLanguage(tc.in); got != tc.normalized {
			t.Fatalf("NormalizeLanguage(%q) = %q, want %q", tc.in, got, tc.normalized)
		}
		if got := render.ToggleLanguage(tc.in); got != tc.toggled {
			t.Fatalf("ToggleLanguage(%q) = %q, want %q", tc.in, got, tc.toggled)
		}
	}
}
