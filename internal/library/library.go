package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/text/language"

	"crunchlist/internal/backup"
	"crunchlist/internal/catalog"
	"crunchlist/internal/fileutil"
	"crunchlist/internal/logging"
)

// ErrNotFound is returned when an id does not match any entry.
var ErrNotFound = errors.New("entry not found")

// ErrNoTitledEntries is returned when a replacing import would empty the
// collection because every record lacked a title.
var ErrNoTitledEntries = errors.New("backup has no entries with a title")

// Repository persists the collection and the theme preference.
type Repository interface {
	LoadAll(ctx context.Context) ([]catalog.Entry, error)
	SaveAll(ctx context.Context, entries []catalog.Entry) error
	Upsert(ctx context.Context, entry catalog.Entry) error
	Remove(ctx context.Context, id string) (bool, error)
	Get(ctx context.Context, id string) (*catalog.Entry, error)
	Theme(ctx context.Context) (catalog.Theme, error)
	SetTheme(ctx context.Context, theme catalog.Theme) error
}

// Library dispatches user intents against a Repository.
type Library struct {
	repo          Repository
	now           func() time.Time
	newID         func() string
	logger        *slog.Logger
	locale        language.Tag
	defaultStatus catalog.Status
}

// Option customizes a Library.
type Option func(*Library)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Library) {
		if now != nil {
			l.now = now
		}
	}
}

// WithIDGenerator overrides how new entry ids are produced.
func WithIDGenerator(newID func() string) Option {
	return func(l *Library) {
		if newID != nil {
			l.newID = newID
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logging.NewComponentLogger(logger, "library")
		}
	}
}

// WithLocale sets the collation locale used for title and tag ordering.
func WithLocale(tag language.Tag) Option {
	return func(l *Library) {
		l.locale = tag
	}
}

// WithDefaultStatus sets the status given to entries that lack one.
func WithDefaultStatus(status catalog.Status) Option {
	return func(l *Library) {
		if status != "" {
			l.defaultStatus = status
		}
	}
}

// New constructs a Library over repo.
func New(repo Repository, opts ...Option) *Library {
	l := &Library{
		repo:          repo,
		now:           time.Now,
		newID:         catalog.NewID,
		logger:        logging.NewNop(),
		locale:        language.English,
		defaultStatus: catalog.DefaultStatus,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Library) log(ctx context.Context) *slog.Logger {
	return logging.WithContext(ctx, l.logger)
}

// Add validates d and stores it as a new entry.
func (l *Library) Add(ctx context.Context, d catalog.Draft) (catalog.Entry, error) {
	entry, err := d.Entry(l.newID(), l.defaultStatus, catalog.Millis(l.now()))
	if err != nil {
		return catalog.Entry{}, err
	}
	if err := l.repo.Upsert(ctx, entry); err != nil {
		return catalog.Entry{}, fmt.Errorf("save entry: %w", err)
	}
	l.log(ctx).Info("entry added",
		logging.String(logging.FieldEntryID, entry.ID),
		logging.String("title", entry.Title),
	)
	return entry, nil
}

// Update applies p to the entry with id. The id and creation time never
// change and the modification time never moves backwards.
func (l *Library) Update(ctx context.Context, id string, p catalog.Patch) (catalog.Entry, error) {
	current, err := l.mustGet(ctx, id)
	if err != nil {
		return catalog.Entry{}, err
	}
	updated, err := p.Apply(current)
	if err != nil {
		return catalog.Entry{}, err
	}
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = l.touch(current)
	if err := l.repo.Upsert(ctx, updated); err != nil {
		return catalog.Entry{}, fmt.Errorf("save entry: %w", err)
	}
	l.log(ctx).Info("entry updated", logging.String(logging.FieldEntryID, id))
	return updated, nil
}

// Delete removes the entry with id.
func (l *Library) Delete(ctx context.Context, id string) error {
	removed, err := l.repo.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("remove entry: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	l.log(ctx).Info("entry removed", logging.String(logging.FieldEntryID, id))
	return nil
}

// ToggleFavorite flips the favorite flag on the entry with id.
func (l *Library) ToggleFavorite(ctx context.Context, id string) (catalog.Entry, error) {
	current, err := l.mustGet(ctx, id)
	if err != nil {
		return catalog.Entry{}, err
	}
	updated := current.Clone()
	updated.Favorite = !current.Favorite
	updated.UpdatedAt = l.touch(current)
	if err := l.repo.Upsert(ctx, updated); err != nil {
		return catalog.Entry{}, fmt.Errorf("save entry: %w", err)
	}
	l.log(ctx).Info("favorite toggled",
		logging.String(logging.FieldEntryID, id),
		logging.Bool("favorite", updated.Favorite),
	)
	return updated, nil
}

// Get returns the entry with id.
func (l *Library) Get(ctx context.Context, id string) (catalog.Entry, error) {
	return l.mustGet(ctx, id)
}

// Browse returns the entries matching f ordered by mode.
func (l *Library) Browse(ctx context.Context, f catalog.Filter, mode catalog.SortMode) ([]catalog.Entry, error) {
	entries, err := l.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return catalog.Sort(catalog.Query(entries, f), mode, l.locale), nil
}

// Stats summarizes the whole collection.
func (l *Library) Stats(ctx context.Context) (catalog.Stats, error) {
	entries, err := l.repo.LoadAll(ctx)
	if err != nil {
		return catalog.Stats{}, fmt.Errorf("load catalog: %w", err)
	}
	return catalog.ComputeStats(entries), nil
}

// Tags returns every distinct tag in collation order.
func (l *Library) Tags(ctx context.Context) ([]string, error) {
	entries, err := l.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return catalog.Tags(entries, l.locale), nil
}

// ImportOptions controls how an imported backup meets the existing collection.
type ImportOptions struct {
	// Merge upserts imported entries by id instead of replacing the collection.
	Merge bool
}

// Import reads a JSON backup from r. The collection is untouched when the
// payload is invalid.
func (l *Library) Import(ctx context.Context, r io.Reader, opts ImportOptions) (backup.Result, error) {
	sanitizer := catalog.Sanitizer{
		Now:           l.now,
		NewID:         l.newID,
		DefaultStatus: l.defaultStatus,
	}
	imported, result, err := backup.Decode(r, sanitizer)
	if err != nil {
		return result, err
	}

	if !opts.Merge && result.Imported == 0 && result.Skipped > 0 {
		return result, fmt.Errorf("%w: %d skipped", ErrNoTitledEntries, result.Skipped)
	}

	next := imported
	if opts.Merge {
		existing, err := l.repo.LoadAll(ctx)
		if err != nil {
			return result, fmt.Errorf("load catalog: %w", err)
		}
		next = merge(existing, imported)
	}
	if err := l.repo.SaveAll(ctx, next); err != nil {
		return result, fmt.Errorf("save catalog: %w", err)
	}

	attrs := []logging.Attr{
		logging.Int("imported", result.Imported),
		logging.Int("skipped", result.Skipped),
		logging.Bool("merge", opts.Merge),
	}
	if result.Skipped > 0 {
		attrs = append(attrs,
			logging.String(logging.FieldImpact, "entries without a title were not imported"),
			logging.String(logging.FieldErrorHint, "add titles to the skipped records and import again"),
		)
		logging.WarnWithContext(l.log(ctx), "backup imported with skipped entries", "import_skipped", attrs...)
	} else {
		l.log(ctx).Info("backup imported", logging.Args(attrs...)...)
	}
	return result, nil
}

// merge replaces existing entries in place by id and appends the rest.
func merge(existing, imported []catalog.Entry) []catalog.Entry {
	out := append([]catalog.Entry(nil), existing...)
	index := make(map[string]int, len(out))
	for i, e := range out {
		index[e.ID] = i
	}
	for _, e := range imported {
		if pos, ok := index[e.ID]; ok {
			out[pos] = e
			continue
		}
		index[e.ID] = len(out)
		out = append(out, e)
	}
	return out
}

// Export writes the whole collection to w and reports how many entries were written.
func (l *Library) Export(ctx context.Context, w io.Writer, format backup.Format) (int, error) {
	entries, err := l.repo.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load catalog: %w", err)
	}
	if err := backup.Encode(w, entries, format); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// ExportFile writes a timestamped backup into dir and returns its path.
func (l *Library) ExportFile(ctx context.Context, dir string, format backup.Format) (string, int, error) {
	path := filepath.Join(dir, backup.FileName(l.now(), format))
	var count int
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		n, err := l.Export(ctx, w, format)
		count = n
		return err
	})
	if err != nil {
		return "", 0, err
	}
	l.log(ctx).Info("backup exported",
		logging.String("path", path),
		logging.String("format", string(format)),
		logging.Int("entries", count),
	)
	return path, count, nil
}

// Theme returns the stored display preference.
func (l *Library) Theme(ctx context.Context) (catalog.Theme, error) {
	return l.repo.Theme(ctx)
}

// SetTheme stores the display preference.
func (l *Library) SetTheme(ctx context.Context, theme catalog.Theme) error {
	if err := l.repo.SetTheme(ctx, theme); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// ToggleTheme switches between light and dark and returns the new value.
func (l *Library) ToggleTheme(ctx context.Context) (catalog.Theme, error) {
	current, err := l.repo.Theme(ctx)
	if err != nil {
		return "", err
	}
	next := current.Toggle()
	if err := l.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

func (l *Library) mustGet(ctx context.Context, id string) (catalog.Entry, error) {
	entry, err := l.repo.Get(ctx, id)
	if err != nil {
		return catalog.Entry{}, fmt.Errorf("load entry: %w", err)
	}
	if entry == nil {
		return catalog.Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *entry, nil
}

// touch returns the next modification time for e.
func (l *Library) touch(e catalog.Entry) int64 {
	return max(catalog.Millis(l.now()), e.UpdatedAt)
}
