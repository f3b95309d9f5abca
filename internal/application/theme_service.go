package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/example/audit-planner/internal/persistence"
	"github.com/example/audit-planner/internal/planning"
)

// ThemeService orchestrates validation and persistence for audit themes. The
// reserved themes ("ADMIN" and "Cloture") are seeded on startup and cannot be
// renamed or deleted.
type ThemeService struct {
	themes      persistence.ThemeRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewThemeService constructs a theme service with the provided dependencies.
func NewThemeService(themes persistence.ThemeRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ThemeService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ThemeService{
		themes:      themes,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *ThemeService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ThemeService", operation, attrs...)
}

// SeedSystemThemes creates the reserved themes when they are missing. It is
// called once at startup and tolerates themes already present.
func (s *ThemeService) SeedSystemThemes(ctx context.Context) error {
	logger := s.loggerWith(ctx, "SeedSystemThemes")
	seeds := []persistence.Theme{
		{Name: planning.SystemThemeAdmin, Description: "Réunions administratives"},
		{Name: planning.SystemThemeClosure, Description: "Réunion de clôture"},
	}
	for _, seed := range seeds {
		seed.ID = s.idGenerator()
		now := s.now()
		seed.CreatedAt = now
		seed.UpdatedAt = now
		err := s.themes.CreateTheme(ctx, seed)
		if errors.Is(err, persistence.ErrDuplicate) {
			continue
		}
		if err != nil {
			logger.ErrorContext(ctx, "failed to seed system theme", "theme", seed.Name, "error", err)
			return mapRepoError(err)
		}
		logger.InfoContext(ctx, "system theme seeded", "theme", seed.Name)
	}
	return nil
}

// CreateTheme validates input and persists a new theme.
func (s *ThemeService) CreateTheme(ctx context.Context, input ThemeInput) (theme Theme, err error) {
	logger := s.loggerWith(ctx, "CreateTheme")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create theme", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("theme_id", theme.ID).InfoContext(ctx, "theme created")
	}()

	vErr := validateThemeInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	name := strings.TrimSpace(input.Name)
	if planning.IsSystemTheme(name) {
		err = ErrSystemTheme
		return
	}

	now := s.now()
	record := persistence.Theme{
		ID:          s.idGenerator(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err = mapRepoError(s.themes.CreateTheme(ctx, record)); err != nil {
		return
	}
	theme = themeFromRecord(record)
	return
}

// UpdateTheme validates input and updates an existing theme. System themes
// are rejected.
func (s *ThemeService) UpdateTheme(ctx context.Context, id string, input ThemeInput) (theme Theme, err error) {
	logger := s.loggerWith(ctx, "UpdateTheme", "theme_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update theme", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "theme updated")
	}()

	vErr := validateThemeInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	name := strings.TrimSpace(input.Name)
	if planning.IsSystemTheme(name) {
		err = ErrSystemTheme
		return
	}

	var existing persistence.Theme
	existing, err = s.themes.GetTheme(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	if planning.IsSystemTheme(existing.Name) {
		err = ErrSystemTheme
		return
	}

	existing.Name = name
	existing.Description = strings.TrimSpace(input.Description)
	existing.UpdatedAt = s.now()

	if err = mapRepoError(s.themes.UpdateTheme(ctx, existing)); err != nil {
		return
	}
	theme = themeFromRecord(existing)
	return
}

// GetTheme retrieves a theme by ID.
func (s *ThemeService) GetTheme(ctx context.Context, id string) (Theme, error) {
	record, err := s.themes.GetTheme(ctx, id)
	if err != nil {
		return Theme{}, mapRepoError(err)
	}
	return themeFromRecord(record), nil
}

// ListThemes returns all themes ordered by name.
func (s *ThemeService) ListThemes(ctx context.Context) ([]Theme, error) {
	records, err := s.themes.ListThemes(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	themes := make([]Theme, 0, len(records))
	for _, record := range records {
		themes = append(themes, themeFromRecord(record))
	}
	return themes, nil
}

// DeleteTheme removes a theme. System themes are rejected.
func (s *ThemeService) DeleteTheme(ctx context.Context, id string) (err error) {
	logger := s.loggerWith(ctx, "DeleteTheme", "theme_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete theme", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "theme deleted")
	}()

	var existing persistence.Theme
	existing, err = s.themes.GetTheme(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	if planning.IsSystemTheme(existing.Name) {
		err = ErrSystemTheme
		return
	}

	err = mapRepoError(s.themes.DeleteTheme(ctx, id))
	return
}

func validateThemeInput(input ThemeInput) *ValidationError {
	vErr := &ValidationError{}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		vErr.add("name", "Le nom est obligatoire")
	}
	if len(name) > 200 {
		vErr.add("name", "Le nom ne doit pas dépasser 200 caractères")
	}
	return vErr
}
