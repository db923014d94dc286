package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg != "invalid type" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", nil); msg != "型が不正です" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_Data(t *testing.T) {
	tr := New("en")
	if msg := tr.Message("invalid_type", map[string]string{"expected": "object"}); msg != "invalid type (expected object)" {
		t.Fatalf("unexpected message: %q", msg)
	}
	if msg := tr.Message("schema_error", map[string]string{"ref": "#/definitions/X"}); msg != "unresolvable schema reference #/definitions/X" {
		t.Fatalf("unexpected message: %q", msg)
	}
	if msg := New("fr").Message("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown codes must fall back to the code, got %q", msg)
	}
}
