package store

import (
	"context"
	"encoding/json"
	"fmt"

	"crunchlist/internal/catalog"
	"crunchlist/internal/logging"
)

// LoadAll returns the persisted collection in stored order. A missing or
// undecodable blob yields an empty collection.
func (s *Store) LoadAll(ctx context.Context) ([]catalog.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// SaveAll overwrites the persisted collection.
func (s *Store) SaveAll(ctx context.Context, entries []catalog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, entries)
}

// Get returns the entry with id, or nil when absent.
func (s *Store) Get(ctx context.Context, id string) (*catalog.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

// Upsert replaces the entry with a matching id in place, or appends it.
func (s *Store) Upsert(ctx context.Context, entry catalog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range entries {
		if entries[i].ID == entry.ID {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}
	return s.saveLocked(ctx, entries)
}

// Remove drops the entry with id. It reports false, and writes nothing, when
// no entry matches.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadLocked(ctx)
	if err != nil {
		return false, err
	}
	kept := entries[:0]
	removed := false
	for _, e := range entries {
		if !removed && e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return false, nil
	}
	return true, s.saveLocked(ctx, kept)
}

func (s *Store) loadLocked(ctx context.Context) ([]catalog.Entry, error) {
	raw, ok, err := s.getValue(ctx, keyEntries)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []catalog.Entry{}, nil
	}
	entries, err := decodeEntries(raw)
	if err != nil {
		logging.WarnWithContext(s.logger, "stored catalog unreadable; starting empty", "catalog_corrupt",
			logging.Error(err),
			logging.String(logging.FieldImpact, "existing entries are hidden until the next save overwrites them"),
			logging.String(logging.FieldErrorHint, "import a backup to restore the catalog"),
		)
		return []catalog.Entry{}, nil
	}
	return entries, nil
}

func (s *Store) saveLocked(ctx context.Context, entries []catalog.Entry) error {
	normalized := make([]catalog.Entry, len(entries))
	for i, e := range entries {
		normalized[i] = e.Normalized()
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := s.putValue(ctx, keyEntries, string(payload)); err != nil {
		return err
	}
	s.logger.Debug("catalog saved", logging.Int("entries", len(entries)))
	return nil
}

func decodeEntries(raw string) ([]catalog.Entry, error) {
	var entries []catalog.Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []catalog.Entry{}
	}
	return entries, nil
}
