package llm

import "testing"

func TestResolveModel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"gemini-2.5-flash", "gpt-4o-mini"},
		{"gemini-2.5-pro", "gpt-4o"},
		{"gemini-2.0-flash", "gpt-4o-mini"},
		{"  gemini-2.5-pro  ", "gpt-4o"},
		{"something-unknown", DefaultUpstreamModel},
		{"", DefaultUpstreamModel},
	}
	for _, tc := range cases {
		if got := ResolveModel(tc.in); got != tc.want {
			t.Fatalf("ResolveModel(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}
