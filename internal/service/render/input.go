package render

import (
	"strings"

	"github.com/YaredDejene/kidase-presentation/internal/domain"
	"github.com/YaredDejene/kidase-presentation/internal/rules"
)

// RenderInput selects one presentation and the context to render it in.
type RenderInput struct {
	PresentationID string
	Context        rules.Context
}

// Validate checks all fields and collects all errors.
func (i RenderInput) Validate() error {
	if strings.TrimSpace(i.PresentationID) == "" {
		return domain.NewValidationError("presentation_id", "required")
	}
	return nil
}

// BatchInput selects several presentations. An empty PresentationIDs renders
// every active presentation.
type BatchInput struct {
	PresentationIDs []string
	Context         rules.Context
}

// Validate checks all fields and collects all errors.
func (i BatchInput) Validate() error {
	var errs []domain.FieldError

	seen := make(map[string]bool, len(i.PresentationIDs))
	for _, id := range i.PresentationIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			errs = append(errs, domain.FieldError{Field: "presentation_ids", Message: "must not contain empty ids"})
			continue
		}
		if seen[id] {
			errs = append(errs, domain.FieldError{Field: "presentation_ids", Message: "duplicate id " + id})
		}
		seen[id] = true
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
