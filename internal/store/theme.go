package store

import (
	"context"

	"crunchlist/internal/catalog"
)

// Theme returns the stored display preference. Missing or unrecognized
// values read as the default theme.
func (s *Store) Theme(ctx context.Context) (catalog.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.getValue(ctx, keyTheme)
	if err != nil {
		return "", err
	}
	if !ok {
		return catalog.DefaultTheme, nil
	}
	theme, err := catalog.ParseTheme(raw)
	if err != nil {
		return catalog.DefaultTheme, nil
	}
	return theme, nil
}

// SetTheme stores the display preference.
func (s *Store) SetTheme(ctx context.Context, theme catalog.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putValue(ctx, keyTheme, string(theme))
}
