package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/audit-planner/internal/persistence/memory"
	"github.com/example/audit-planner/internal/planning"
	"github.com/example/audit-planner/internal/testfixtures"
)

func newThemeService(store *memory.Store) *ThemeService {
	return NewThemeService(
		store,
		testfixtures.NewIDGenerator("theme").NextFunc(),
		testfixtures.NewClock(time.Time{}).NowFunc(),
		nil,
	)
}

func TestSeedSystemThemes(t *testing.T) {
	store := memory.NewStore()
	service := newThemeService(store)
	ctx := context.Background()

	if err := service.SeedSystemThemes(ctx); err != nil {
		t.Fatalf("SeedSystemThemes returned %v", err)
	}
	// Seeding twice must be a no-op, not a duplicate error.
	if err := service.SeedSystemThemes(ctx); err != nil {
		t.Fatalf("second SeedSystemThemes returned %v", err)
	}

	themes, err := service.ListThemes(ctx)
	if err != nil {
		t.Fatalf("ListThemes returned %v", err)
	}
	names := map[string]bool{}
	for _, theme := range themes {
		names[theme.Name] = theme.System
	}
	if len(themes) != 2 {
		t.Fatalf("got %d themes, want 2", len(themes))
	}
	if !names[planning.SystemThemeAdmin] || !names[planning.SystemThemeClosure] {
		t.Fatalf("seeded themes = %v", names)
	}
}

func TestCreateThemeRejectsReservedNames(t *testing.T) {
	service := newThemeService(memory.NewStore())

	_, err := service.CreateTheme(context.Background(), ThemeInput{Name: "admin"})
	if !errors.Is(err, ErrSystemTheme) {
		t.Fatalf("got %v, want ErrSystemTheme", err)
	}
}

func TestUpdateAndDeleteSystemThemeRejected(t *testing.T) {
	store := memory.NewStore()
	service := newThemeService(store)
	ctx := context.Background()

	if err := service.SeedSystemThemes(ctx); err != nil {
		t.Fatalf("SeedSystemThemes returned %v", err)
	}
	themes, err := service.ListThemes(ctx)
	if err != nil {
		t.Fatalf("ListThemes returned %v", err)
	}
	var adminID string
	for _, theme := range themes {
		if theme.Name == planning.SystemThemeAdmin {
			adminID = theme.ID
		}
	}
	if adminID == "" {
		t.Fatal("ADMIN theme not seeded")
	}

	if _, err := service.UpdateTheme(ctx, adminID, ThemeInput{Name: "Autre"}); !errors.Is(err, ErrSystemTheme) {
		t.Fatalf("update: got %v, want ErrSystemTheme", err)
	}
	if err := service.DeleteTheme(ctx, adminID); !errors.Is(err, ErrSystemTheme) {
		t.Fatalf("delete: got %v, want ErrSystemTheme", err)
	}
}

func TestThemeCRUD(t *testing.T) {
	service := newThemeService(memory.NewStore())
	ctx := context.Background()

	theme, err := service.CreateTheme(ctx, ThemeInput{Name: "Sécurité réseau", Description: "Pare-feu et segmentation"})
	if err != nil {
		t.Fatalf("CreateTheme returned %v", err)
	}
	if theme.System {
		t.Fatal("regular theme flagged as system")
	}

	updated, err := service.UpdateTheme(ctx, theme.ID, ThemeInput{Name: "Sécurité du SI"})
	if err != nil {
		t.Fatalf("UpdateTheme returned %v", err)
	}
	if updated.Name != "Sécurité du SI" {
		t.Fatalf("name = %q", updated.Name)
	}

	if err := service.DeleteTheme(ctx, theme.ID); err != nil {
		t.Fatalf("DeleteTheme returned %v", err)
	}
	if _, err := service.GetTheme(ctx, theme.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
