package localeunit

import "testing"

func TestNormalizeKeyExtractsBracketedLocale(t *testing.T) {
	if got := normalizeKey("Name[pt_BR]"); got != "pt-BR" {
		t.Fatalf("expected pt-BR, got %q", got)
	}
	if got := normalizeKey("Name"); got != "" {
		t.Fatalf("expected empty locale for bare key, got %q", got)
	}
}

func TestCanonicalizeFallsBackForUnseenLocale(t *testing.T) {
	u := New(nil)
	got := u.Canonicalize("pt_BR")
	if got != "pt-BR" {
		t.Fatalf("expected pt-BR, got %q", got)
	}
}

func TestCanonicalizeInvalidLocaleReturnsInput(t *testing.T) {
	u := New(nil)
	got := u.Canonicalize("not a locale!!")
	if got != "not a locale!!" {
		t.Fatalf("expected invalid input echoed back, got %q", got)
	}
}
