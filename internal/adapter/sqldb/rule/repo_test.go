package rule_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/YaredDejene/kidase-presentation/internal/adapter/sqldb/rule"
	"github.com/YaredDejene/kidase-presentation/internal/adapter/sqldb/testhelper"
	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

func TestRepo_ListForPresentation(t *testing.T) {
	for dialect, setup := range testhelper.Dialects() {
		t.Run(string(dialect), func(t *testing.T) {
			db := setup(t)
			repo := rule.New(db)
			ctx := context.Background()

			presentationID := uuid.NewString()
			slideID := uuid.NewString()
			created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

			pres := testhelper.SeedRule(t, db, domain.RuleDefinition{
				ID:             "1-" + uuid.NewString(),
				Scope:          domain.RuleScopePresentation,
				PresentationID: presentationID,
				RuleJSON:       `{"season":"tsige"}`,
				GitsaweID:      "g1",
				IsEnabled:      true,
				CreatedAt:      created,
			})
			slide := testhelper.SeedRule(t, db, domain.RuleDefinition{
				ID:        "2-" + uuid.NewString(),
				Scope:     domain.RuleScopeSlide,
				SlideID:   slideID,
				IsEnabled: false,
			})
			// Other presentation and other slide: never returned.
			testhelper.SeedRule(t, db, domain.RuleDefinition{Scope: domain.RuleScopePresentation, PresentationID: uuid.NewString(), IsEnabled: true})
			testhelper.SeedRule(t, db, domain.RuleDefinition{Scope: domain.RuleScopeSlide, SlideID: uuid.NewString(), IsEnabled: true})

			got, err := repo.ListForPresentation(ctx, presentationID, []string{slideID})
			if err != nil {
				t.Fatalf("ListForPresentation: unexpected error: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("ListForPresentation returned %d rules, want 2", len(got))
			}

			if got[0].ID != pres.ID {
				t.Fatalf("first rule = %s, want %s", got[0].ID, pres.ID)
			}
			if got[0].Scope != domain.RuleScopePresentation || got[0].PresentationID != presentationID {
				t.Errorf("presentation rule scope/target = %s/%s", got[0].Scope, got[0].PresentationID)
			}
			if got[0].SlideID != "" {
				t.Errorf("presentation rule SlideID = %q, want empty", got[0].SlideID)
			}
			if got[0].GitsaweID != "g1" || got[0].RuleJSON != `{"season":"tsige"}` {
				t.Errorf("presentation rule = %+v", got[0])
			}
			if !got[0].IsEnabled || !got[0].CreatedAt.Equal(created) {
				t.Errorf("presentation rule enabled=%v created=%v", got[0].IsEnabled, got[0].CreatedAt)
			}

			if got[1].ID != slide.ID || got[1].SlideID != slideID {
				t.Errorf("slide rule = %+v, want id %s slide %s", got[1], slide.ID, slideID)
			}
			if got[1].IsEnabled {
				t.Error("disabled slide rule must be returned with IsEnabled=false")
			}
			if got[1].GitsaweID != "" {
				t.Errorf("slide rule GitsaweID = %q, want empty for NULL", got[1].GitsaweID)
			}
		})
	}
}

func TestRepo_ListForPresentation_NoSlides(t *testing.T) {
	db := testhelper.SetupSQLite(t)
	presentationID := uuid.NewString()
	testhelper.SeedRule(t, db, domain.RuleDefinition{Scope: domain.RuleScopePresentation, PresentationID: presentationID, IsEnabled: true})
	testhelper.SeedRule(t, db, domain.RuleDefinition{Scope: domain.RuleScopeSlide, SlideID: uuid.NewString(), IsEnabled: true})

	got, err := rule.New(db).ListForPresentation(context.Background(), presentationID, nil)
	if err != nil {
		t.Fatalf("ListForPresentation: unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Scope != domain.RuleScopePresentation {
		t.Errorf("ListForPresentation = %+v, want the single presentation rule", got)
	}
}
