package profiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/models"
)

func testSequence(name string) *models.Sequence {
	seq := models.NewSequence()
	seq.Name = name
	seq.Description = "test profile"
	seq.StartDelay = 5.0
	seq.LoopCount = 12
	seq.Points = []models.ClickPoint{
		{X: 100, Y: 200, Delay: 2.5, Randomize: true, RandomRange: 4, Enabled: true},
		{X: 300, Y: 400, Delay: 8.0, Enabled: false},
	}
	return seq
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	path, err := store.Save(testSequence("Yew Trees"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "Yew_Trees.json" {
		t.Fatalf("unexpected filename: %q", filepath.Base(path))
	}

	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Name != "Yew Trees" {
		t.Fatalf("unexpected name: %q", loaded.Name)
	}
	if loaded.Description != "test profile" {
		t.Fatalf("unexpected description: %q", loaded.Description)
	}
	if loaded.StartDelay != 5.0 {
		t.Fatalf("unexpected start delay: %g", loaded.StartDelay)
	}
	if loaded.LoopCount != 12 {
		t.Fatalf("unexpected loop count: %d", loaded.LoopCount)
	}
	if len(loaded.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(loaded.Points))
	}

	first := loaded.Points[0]
	if first.X != 100 || first.Y != 200 || first.Delay != 2.5 {
		t.Fatalf("unexpected first point: %+v", first)
	}
	if !first.Randomize || first.RandomRange != 4 {
		t.Fatalf("randomization settings lost: %+v", first)
	}
	if loaded.Points[1].Enabled {
		t.Fatalf("expected second point disabled")
	}
	if loaded.SavedAt.IsZero() {
		t.Fatalf("expected SavedAt to be stamped")
	}
}

func TestSaveAppendsSuffixOnCollision(t *testing.T) {
	store := NewStore(t.TempDir())

	first, err := store.Save(testSequence("fishing"))
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := store.Save(testSequence("fishing"))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	third, err := store.Save(testSequence("fishing"))
	if err != nil {
		t.Fatalf("third save: %v", err)
	}

	if filepath.Base(first) != "fishing.json" {
		t.Fatalf("unexpected first filename: %q", filepath.Base(first))
	}
	if filepath.Base(second) != "fishing_1.json" {
		t.Fatalf("unexpected second filename: %q", filepath.Base(second))
	}
	if filepath.Base(third) != "fishing_2.json" {
		t.Fatalf("unexpected third filename: %q", filepath.Base(third))
	}
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Yew Trees", "Yew_Trees"},
		{"high-alch_v2", "high-alch_v2"},
		{"mining*loop?", "miningloop"},
		{"../../etc/passwd", "etcpasswd"},
		{"   ", "___"},
		{"!!!", "profile"},
		{"", "profile"},
	}

	for _, tc := range tests {
		if got := safeFileName(tc.in); got != tc.want {
			t.Fatalf("safeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLoadFillsMissingFieldsWithDefaults(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	// A file written by an older version, without delays or flags.
	content := `{"name":"old","click_points":[{"x":10,"y":20}]}`
	path := filepath.Join(dir, "old.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	seq, err := store.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if seq.StartDelay != models.DefaultStartDelay {
		t.Fatalf("expected default start delay, got %g", seq.StartDelay)
	}
	if seq.LoopCount != 0 {
		t.Fatalf("expected infinite loop count, got %d", seq.LoopCount)
	}
	if len(seq.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(seq.Points))
	}

	p := seq.Points[0]
	if p.Delay != models.DefaultPointDelay {
		t.Fatalf("expected default point delay, got %g", p.Delay)
	}
	if !p.Enabled {
		t.Fatalf("expected missing enabled to default to true")
	}
}

func TestLoadKeepsExplicitZeroValues(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	content := `{"name":"zeroes","loop_count":0,"start_delay":0.5,"click_points":[{"x":1,"y":2,"delay":0.1,"enabled":false}]}`
	path := filepath.Join(dir, "zeroes.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	seq, err := store.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if seq.StartDelay != 0.5 {
		t.Fatalf("expected explicit start delay 0.5, got %g", seq.StartDelay)
	}
	if seq.Points[0].Delay != 0.1 {
		t.Fatalf("expected explicit delay 0.1, got %g", seq.Points[0].Delay)
	}
	if seq.Points[0].Enabled {
		t.Fatalf("expected explicit enabled=false to stick")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	path := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := store.Load(path); err == nil {
		t.Fatalf("expected error for malformed file")
	}
}

func TestListSortsByNameAndSkipsJunk(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	if _, err := store.Save(testSequence("zulrah")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Save(testSequence("agility")); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Junk the lister must skip.
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write broken file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("write text file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	entries, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "agility" || entries[1].Name != "zulrah" {
		t.Fatalf("expected name-sorted entries, got %q then %q", entries[0].Name, entries[1].Name)
	}
	if entries[0].Points != 2 {
		t.Fatalf("expected point count 2, got %d", entries[0].Points)
	}
	if entries[0].Path == "" {
		t.Fatalf("expected entry path to be set")
	}
}

func TestListMissingDirIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "does-not-exist"))

	entries, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestListUsesFilenameWhenNameMissing(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	content := `{"click_points":[]}`
	if err := os.WriteFile(filepath.Join(dir, "unnamed.json"), []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	entries, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Name != "unnamed" {
		t.Fatalf("expected filename fallback, got %q", entries[0].Name)
	}
}

func TestDeleteRemovesFile(t *testing.T) {
	store := NewStore(t.TempDir())

	path, err := store.Save(testSequence("temp"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := store.Delete(path); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err: %v", err)
	}

	if err := store.Delete(path); err == nil {
		t.Fatalf("expected error deleting missing file")
	}
}

func TestEnsureCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "profiles")
	store := NewStore(dir)

	if err := store.Ensure(); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected directory at %q", dir)
	}
}
