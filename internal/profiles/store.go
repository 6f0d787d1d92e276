// Package profiles persists click sequences as flat JSON files in a
// profiles directory, one file per named profile.
package profiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/models"
)

const fileExt = ".json"

// Entry summarizes a stored profile for listings.
type Entry struct {
	Name        string
	Description string
	Points      int
	SavedAt     time.Time
	Path        string
}

// Store reads and writes profiles under a single directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the profiles directory.
func (s *Store) Dir() string {
	return s.dir
}

// Ensure creates the profiles directory if it does not exist.
func (s *Store) Ensure() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create profiles dir: %w", err)
	}
	return nil
}

// Save writes the sequence to a new file named after the profile, appending
// _1, _2, ... when the name is already taken. Returns the path written.
func (s *Store) Save(seq *models.Sequence) (string, error) {
	if err := s.Ensure(); err != nil {
		return "", err
	}

	base := safeFileName(seq.Name)
	path := filepath.Join(s.dir, base+fileExt)
	for i := 1; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		if i > 999 {
			return "", fmt.Errorf("no free filename for profile %q", seq.Name)
		}
		path = filepath.Join(s.dir, fmt.Sprintf("%s_%d%s", base, i, fileExt))
	}

	if err := s.SaveTo(path, seq); err != nil {
		return "", err
	}
	return path, nil
}

// SaveTo writes the sequence to the given path, overwriting it. SavedAt is
// stamped at write time.
func (s *Store) SaveTo(path string, seq *models.Sequence) error {
	seq.SavedAt = time.Now()

	data, err := json.MarshalIndent(seq, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// Load reads a profile file. Missing optional fields get their defaults, so
// files written by older versions still load.
func (s *Store) Load(path string) (*models.Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var file sequenceFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", filepath.Base(path), err)
	}

	return file.toSequence(), nil
}

// List returns all readable profiles in the directory, sorted by name.
// Malformed files are skipped.
func (s *Store) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profiles dir: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), fileExt) {
			continue
		}

		path := filepath.Join(s.dir, de.Name())
		seq, err := s.Load(path)
		if err != nil {
			continue
		}

		name := seq.Name
		if name == "" {
			name = strings.TrimSuffix(de.Name(), fileExt)
		}

		entries = append(entries, Entry{
			Name:        name,
			Description: seq.Description,
			Points:      len(seq.Points),
			SavedAt:     seq.SavedAt,
			Path:        path,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Delete removes a stored profile file.
func (s *Store) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// safeFileName keeps letters, digits, dashes and underscores; spaces become
// underscores. An empty result falls back to "profile".
func safeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r == '-' || r == '_':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "profile"
	}
	return b.String()
}

// sequenceFile is the tolerant wire form used for loading. Pointer fields
// distinguish absent from zero.
type sequenceFile struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	StartDelay  *float64    `json:"start_delay"`
	LoopCount   *int        `json:"loop_count"`
	ClickPoints []pointFile `json:"click_points"`
	SavedAt     time.Time   `json:"saved_at"`
}

type pointFile struct {
	X           int      `json:"x"`
	Y           int      `json:"y"`
	Delay       *float64 `json:"delay"`
	Randomize   bool     `json:"randomize"`
	RandomRange int      `json:"random_range"`
	Enabled     *bool    `json:"enabled"`
}

func (f *sequenceFile) toSequence() *models.Sequence {
	seq := models.NewSequence()
	seq.Name = f.Name
	seq.Description = f.Description
	seq.SavedAt = f.SavedAt

	if f.StartDelay != nil {
		seq.StartDelay = *f.StartDelay
	}
	if f.LoopCount != nil {
		seq.LoopCount = *f.LoopCount
	}

	seq.Points = make([]models.ClickPoint, 0, len(f.ClickPoints))
	for _, pf := range f.ClickPoints {
		p := models.ClickPoint{
			X:           pf.X,
			Y:           pf.Y,
			Delay:       models.DefaultPointDelay,
			Randomize:   pf.Randomize,
			RandomRange: pf.RandomRange,
			Enabled:     true,
		}
		if pf.Delay != nil {
			p.Delay = *pf.Delay
		}
		if pf.Enabled != nil {
			p.Enabled = *pf.Enabled
		}
		seq.Points = append(seq.Points, p)
	}

	return seq
}
