package textutil

import "testing"

func TestRemoveMarkdown(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "**Hello** world", "Hello world"},
		{"bullets", "- first\n* second", "first\nsecond"},
		{"inline dash", "**Hello** - world", "Hello world"},
		{"punctuation", "# Header [link](url)", "Header linkurl"},
		{"newline runs", "one\n\n\n\ntwo", "one\ntwo"},
		{"combined", "**Hello** - world\n\n\n\nBye", "Hello world\nBye"},
		{"plain", "no markdown here", "no markdown here"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RemoveMarkdown(tc.in); got != tc.want {
				t.Errorf("RemoveMarkdown(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatParagraphs(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"single newlines become paragraphs", "Hello world\nBye", "Hello world\n\nBye"},
		{"empty segments dropped", "a\n\n  \nb", "a\n\nb"},
		{"segments trimmed", "  a  \n  b  ", "a\n\nb"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatParagraphs(tc.in); got != tc.want {
				t.Errorf("FormatParagraphs(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestClean_FullPipeline(t *testing.T) {
	got := Clean("**Hello** - world\n\n\n\nBye")
	want := "Hello world\n\nBye"
	if got != want {
		t.Errorf("Clean = %q, want %q", got, want)
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"**Hello** - world\n\n\n\nBye",
		"- a\n- b\n\n# heading",
		"plain text",
		"",
		"a\nb\nc",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestUnescape(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`line\none`, "line\none"},
		{`tab\there`, "tab\there"},
		{`quote \" and \'`, `quote " and '`},
		{`double \\n stays literal backslash-n`, `double \n stays literal backslash-n`},
		{`unknown \x kept`, `unknown \x kept`},
		{"no escapes", "no escapes"},
		{`trailing \`, `trailing \`},
	}
	for _, tc := range cases {
		if got := Unescape(tc.in); got != tc.want {
			t.Errorf("Unescape(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
