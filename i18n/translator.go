package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "ref").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

// New returns the built-in Translator for lang ("en" or "ja"; anything else
// falls back to "en").
func New(lang string) Translator {
	if lang != "ja" {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			if exp, ok := data["expected"]; ok {
				return "型が不正です(期待値: " + exp + ")"
			}
			return "型が不正です"
		case "schema_error":
			if ref, ok := data["ref"]; ok {
				return "スキーマを解決できません: " + ref
			}
			return "スキーマが不正です"
		case "duplicate_key":
			return "キーが重複しています"
		case "parse_error":
			return "解析エラー"
		case "truncated":
			return "入力が大きすぎます"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			if exp, ok := data["expected"]; ok {
				return "invalid type (expected " + exp + ")"
			}
			return "invalid type"
		case "schema_error":
			if ref, ok := data["ref"]; ok {
				return "unresolvable schema reference " + ref
			}
			return "invalid schema"
		case "duplicate_key":
			return "duplicate key"
		case "parse_error":
			return "parse error"
		case "truncated":
			return "input too large"
		}
	}
	return code
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) { SetTranslator(New(lang)) }

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
