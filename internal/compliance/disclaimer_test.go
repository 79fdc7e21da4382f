package compliance

import (
	"strings"
	"testing"
)

func TestDisclaimer_Append(t *testing.T) {
	d := NewDisclaimer(DisclaimerMedium, true)

	out := d.Append("Drink plenty of water.")
	if !strings.HasPrefix(out, "Drink plenty of water.") {
		t.Errorf("message body should come first: %q", out)
	}
	if !strings.Contains(out, "not medical advice") {
		t.Errorf("expected disclaimer appended: %q", out)
	}
}

func TestDisclaimer_NeverAppendedTwice(t *testing.T) {
	d := NewDisclaimer(DisclaimerShort, true)

	once := d.Append("Stretch before exercise.")
	twice := d.Append(once)
	if once != twice {
		t.Errorf("disclaimer appended twice:\n%q\n%q", once, twice)
	}
}

func TestDisclaimer_Disabled(t *testing.T) {
	d := NewDisclaimer(DisclaimerFull, false)
	if got := d.Append("msg"); got != "msg" {
		t.Errorf("disabled disclaimer should not modify message, got %q", got)
	}
}

func TestDisclaimer_NilSafe(t *testing.T) {
	var d *Disclaimer
	if got := d.Append("msg"); got != "msg" {
		t.Errorf("nil disclaimer should pass through, got %q", got)
	}
}

func TestDisclaimer_EmptyMessage(t *testing.T) {
	d := NewDisclaimer(DisclaimerMedium, true)
	if got := d.Append("   "); got != "   " {
		t.Errorf("empty message should pass through, got %q", got)
	}
}

func TestParseDisclaimerLevel(t *testing.T) {
	cases := map[string]DisclaimerLevel{
		"short":   DisclaimerShort,
		"FULL":    DisclaimerFull,
		"medium":  DisclaimerMedium,
		"unknown": DisclaimerMedium,
		"":        DisclaimerMedium,
	}
	for in, want := range cases {
		if got := ParseDisclaimerLevel(in); got != want {
			t.Errorf("ParseDisclaimerLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
