package application

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/example/audit-planner/internal/persistence"
	"github.com/example/audit-planner/internal/persistence/memory"
	"github.com/example/audit-planner/internal/planning"
	"github.com/example/audit-planner/internal/testfixtures"
)

func newPlanFixture(t *testing.T) (*PlanService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	company := testfixtures.NewCompanyFixture(testfixtures.WithCompanyID("company-001"))
	if err := store.CreateCompany(ctx, company); err != nil {
		t.Fatalf("seed company: %v", err)
	}
	audit := testfixtures.NewAuditFixture(
		testfixtures.WithAuditID("audit-001"),
		testfixtures.WithAuditCompany("company-001"),
		testfixtures.WithAuditDates(
			time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		),
	)
	if err := store.CreateAudit(ctx, audit); err != nil {
		t.Fatalf("seed audit: %v", err)
	}
	theme := testfixtures.NewThemeFixture(
		testfixtures.WithThemeID("theme-net"),
		testfixtures.WithThemeName("Sécurité réseau"),
	)
	if err := store.CreateTheme(ctx, theme); err != nil {
		t.Fatalf("seed theme: %v", err)
	}

	service := NewPlanService(
		planning.DefaultCalendar(),
		store, store, store,
		testfixtures.NewIDGenerator("plan").NextFunc(),
		testfixtures.NewClock(time.Time{}).NowFunc(),
		nil,
	)
	return service, store
}

func planParams() PlanParams {
	return PlanParams{
		AuditID:               "audit-001",
		ThemeIDs:              []string{"theme-net"},
		ThemeDurations:        map[string]int{"theme-net": 120},
		IncludeOpeningClosing: true,
	}
}

func TestPreviewGeneratesWithoutPersisting(t *testing.T) {
	service, store := newPlanFixture(t)
	ctx := context.Background()

	result, err := service.Preview(ctx, planParams())
	if err != nil {
		t.Fatalf("Preview returned %v", err)
	}
	if result.Committed {
		t.Fatal("preview must not be marked committed")
	}
	if result.Overflow {
		t.Fatal("unexpected overflow")
	}
	if len(result.Items) == 0 {
		t.Fatal("expected generated items")
	}

	var interview *planning.Item
	for idx := range result.Items {
		if result.Items[idx].Kind == planning.KindInterview {
			interview = &result.Items[idx]
		}
	}
	if interview == nil {
		t.Fatal("expected an interview item")
	}
	if interview.ThemeID != "theme-net" || interview.Title != "Sécurité réseau" {
		t.Fatalf("interview = %+v", interview)
	}
	if interview.Minutes != 120 {
		t.Fatalf("interview minutes = %d, want 120", interview.Minutes)
	}

	stored, err := store.ListInterviewsForAudit(ctx, "audit-001")
	if err != nil {
		t.Fatalf("ListInterviewsForAudit returned %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("preview persisted %d interviews", len(stored))
	}
}

func TestPreviewIsDeterministic(t *testing.T) {
	service, _ := newPlanFixture(t)
	ctx := context.Background()

	first, err := service.Preview(ctx, planParams())
	if err != nil {
		t.Fatalf("Preview returned %v", err)
	}
	second, err := service.Preview(ctx, planParams())
	if err != nil {
		t.Fatalf("Preview returned %v", err)
	}
	if !reflect.DeepEqual(first.Items, second.Items) {
		t.Fatal("identical requests produced different plans")
	}
}

func TestCommitPersistsExactlyThePreview(t *testing.T) {
	service, store := newPlanFixture(t)
	ctx := context.Background()

	preview, err := service.Preview(ctx, planParams())
	if err != nil {
		t.Fatalf("Preview returned %v", err)
	}
	committed, err := service.Commit(ctx, planParams())
	if err != nil {
		t.Fatalf("Commit returned %v", err)
	}
	if !committed.Committed {
		t.Fatal("commit result not marked committed")
	}
	if !reflect.DeepEqual(preview.Items, committed.Items) {
		t.Fatal("commit diverged from preview")
	}

	stored, err := store.ListInterviewsForAudit(ctx, "audit-001")
	if err != nil {
		t.Fatalf("ListInterviewsForAudit returned %v", err)
	}
	if len(stored) != len(committed.Items) {
		t.Fatalf("stored %d rows, want %d", len(stored), len(committed.Items))
	}
	for _, record := range stored {
		if !record.Generated {
			t.Fatalf("record %q not flagged generated", record.ID)
		}
	}
}

func TestRecommitReplacesGeneratedAndKeepsManual(t *testing.T) {
	service, store := newPlanFixture(t)
	ctx := context.Background()

	manual := testfixtures.NewInterviewFixture(
		testfixtures.WithInterviewID("manual"),
		testfixtures.WithInterviewAudit("audit-001"),
	)
	if err := store.CreateInterview(ctx, manual); err != nil {
		t.Fatalf("seed manual interview: %v", err)
	}

	first, err := service.Commit(ctx, planParams())
	if err != nil {
		t.Fatalf("first Commit returned %v", err)
	}
	if _, err := service.Commit(ctx, planParams()); err != nil {
		t.Fatalf("second Commit returned %v", err)
	}

	stored, err := store.ListInterviewsForAudit(ctx, "audit-001")
	if err != nil {
		t.Fatalf("ListInterviewsForAudit returned %v", err)
	}
	if len(stored) != len(first.Items)+1 {
		t.Fatalf("stored %d rows, want %d generated plus the manual one", len(stored), len(first.Items))
	}
	foundManual := false
	for _, record := range stored {
		if record.ID == "manual" {
			foundManual = true
		}
	}
	if !foundManual {
		t.Fatal("manual interview was deleted by recommit")
	}
}

func TestPlanUnknownTheme(t *testing.T) {
	service, _ := newPlanFixture(t)

	params := planParams()
	params.ThemeIDs = []string{"theme-ghost"}
	if _, err := service.Preview(context.Background(), params); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("got %v, want ErrUnknownTheme", err)
	}
}

func TestPlanUnknownAudit(t *testing.T) {
	service, _ := newPlanFixture(t)

	params := planParams()
	params.AuditID = "audit-ghost"
	if _, err := service.Preview(context.Background(), params); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestPlanWithoutBusinessDays(t *testing.T) {
	service, _ := newPlanFixture(t)
	ctx := context.Background()

	// Saturday and Sunday only, so the defaulted day selection is empty.
	params := planParams()
	params.StartDate = time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	params.EndDate = time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	result, err := service.Preview(ctx, params)
	if err != nil {
		t.Fatalf("Preview returned %v", err)
	}
	if len(result.Items) != 0 {
		t.Fatalf("expected empty preview, got %d items", len(result.Items))
	}

	_, err = service.Commit(ctx, params)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if _, ok := vErr.FieldErrors["selected_days"]; !ok {
		t.Fatalf("FieldErrors = %v, want selected_days", vErr.FieldErrors)
	}
}

func TestCommitRejectsInsufficientCapacity(t *testing.T) {
	service, _ := newPlanFixture(t)
	ctx := context.Background()

	// 3000 thematic minutes cannot fit in five 450-minute days.
	params := planParams()
	params.ThemeDurations = map[string]int{"theme-net": 3000}

	_, err := service.Commit(ctx, params)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if _, ok := vErr.FieldErrors["selected_days"]; !ok {
		t.Fatalf("FieldErrors = %v, want selected_days", vErr.FieldErrors)
	}

	// Preview still renders the misfit instead of rejecting it.
	if _, err := service.Preview(ctx, params); err != nil {
		t.Fatalf("Preview returned %v", err)
	}
}

func TestPlanDefaultsDurationTo60(t *testing.T) {
	service, _ := newPlanFixture(t)

	params := planParams()
	params.ThemeDurations = nil

	result, err := service.Preview(context.Background(), params)
	if err != nil {
		t.Fatalf("Preview returned %v", err)
	}
	for _, item := range result.Items {
		if item.Kind == planning.KindInterview && item.Minutes != planning.DefaultInterviewMinutes {
			t.Fatalf("interview minutes = %d, want %d", item.Minutes, planning.DefaultInterviewMinutes)
		}
	}
}

// failingDeleteStore simulates a storage layer whose cleanup of prior
// generated interviews fails while inserts keep working.
type failingDeleteStore struct {
	*memory.Store
}

func (s *failingDeleteStore) DeleteGeneratedInterviews(ctx context.Context, auditID string) error {
	return errors.New("disk on fire")
}

func TestCommitSurvivesDeleteFailure(t *testing.T) {
	service, store := newPlanFixture(t)
	ctx := context.Background()

	service.interviews = &failingDeleteStore{Store: store}

	result, err := service.Commit(ctx, planParams())
	if err != nil {
		t.Fatalf("Commit returned %v", err)
	}
	if !result.Committed {
		t.Fatal("commit result not marked committed")
	}

	stored, err := store.ListInterviewsForAudit(ctx, "audit-001")
	if err != nil {
		t.Fatalf("ListInterviewsForAudit returned %v", err)
	}
	if len(stored) != len(result.Items) {
		t.Fatalf("stored %d rows, want %d", len(stored), len(result.Items))
	}
}

func TestPlanSkipsSystemThemes(t *testing.T) {
	service, store := newPlanFixture(t)
	ctx := context.Background()

	admin := testfixtures.NewThemeFixture(
		testfixtures.WithThemeID("theme-admin"),
		testfixtures.WithThemeName(planning.SystemThemeAdmin),
	)
	if err := store.CreateTheme(ctx, admin); err != nil {
		t.Fatalf("seed system theme: %v", err)
	}

	params := PlanParams{
		AuditID:               "audit-001",
		ThemeIDs:              []string{"theme-admin"},
		IncludeOpeningClosing: true,
	}
	result, err := service.Preview(ctx, params)
	if err != nil {
		t.Fatalf("Preview returned %v", err)
	}
	for _, item := range result.Items {
		if item.Kind == planning.KindInterview {
			t.Fatalf("system theme produced interview %+v", item)
		}
	}
}

var _ persistence.InterviewRepository = (*failingDeleteStore)(nil)
