package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Localized maps a language code to text.
type Localized map[string]string

// Get returns the text for lang, or "" when absent.
func (l Localized) Get(lang string) string {
	if l == nil {
		return ""
	}
	return l[lang]
}

// ParseLocalized decodes persisted per-language text.
//
// Accepted shapes: an object keyed by language code ({"am": "...", "en": "..."})
// or by fixed slot ({"lang1": "..."}), a JSON string, or plain text. Strings
// and plain text apply to every language in languageMap. Slot keys are mapped
// through slots; an explicit language code wins over a slot key naming the
// same language. Text that merely looks like JSON, such as "{{feast}} Kidase",
// is plain text. Empty input and JSON null yield a nil map.
func ParseLocalized(raw []byte, languageMap []string, slots SlotMap) Localized {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '{':
		var m map[string]any
		if err := json.Unmarshal(trimmed, &m); err != nil {
			break
		}
		out := make(Localized, len(m))
		for key, v := range m {
			idx, isSlot := slotIndex(key)
			if !isSlot {
				out[key] = textValue(v)
				continue
			}
			lang := slots[idx]
			if lang == "" {
				continue
			}
			if _, explicit := m[lang]; !explicit {
				out[lang] = textValue(v)
			}
		}
		return out
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			break
		}
		return uniform(s, languageMap)
	}

	return uniform(string(trimmed), languageMap)
}

// slotIndex reports whether key is "lang1".."lang4" and returns its zero-based index.
func slotIndex(key string) (int, bool) {
	if len(key) != 5 || key[:4] != "lang" {
		return 0, false
	}
	n := int(key[4] - '0')
	if n < 1 || n > MaxLanguages {
		return 0, false
	}
	return n - 1, true
}

func uniform(text string, languageMap []string) Localized {
	out := make(Localized, len(languageMap))
	for _, lang := range languageMap {
		out[lang] = text
	}
	return out
}

func textValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
