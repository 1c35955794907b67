package presentation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

// ParseLanguageMap decodes the language_map column into display languages
// and the value slot each one reads. The desktop application stores either
// an ordered array of language codes, bound to slots by position, or an
// object keyed by slot ("lang1".."lang4"). The object form is ordered by
// slot; empty slots are skipped but keep their place in the binding.
func ParseLanguageMap(raw string) ([]string, domain.SlotMap, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, domain.SlotMap{}, fmt.Errorf("language_map: empty")
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return list, domain.PositionalSlots(list), nil
	}

	var bySlot map[string]string
	if err := json.Unmarshal([]byte(raw), &bySlot); err != nil {
		return nil, domain.SlotMap{}, fmt.Errorf("language_map: %w", err)
	}
	var (
		out   = make([]string, 0, len(bySlot))
		slots domain.SlotMap
	)
	for i := 1; i <= domain.MaxLanguages+1; i++ {
		code, ok := bySlot[fmt.Sprintf("lang%d", i)]
		if !ok || code == "" {
			continue
		}
		out = append(out, code)
		if i <= domain.MaxLanguages {
			slots[i-1] = code
		}
	}
	if len(out) == 0 {
		return nil, domain.SlotMap{}, fmt.Errorf("language_map: no languages")
	}
	return out, slots, nil
}

func parseLanguageSettings(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("language_settings: %w", err)
	}
	return out, nil
}
