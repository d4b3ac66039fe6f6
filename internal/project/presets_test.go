package project

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/railgen/internal/model"
	"github.com/piwi3910/railgen/internal/shapes"
)

func rectangularShape(t *testing.T) shapes.Params {
	t.Helper()
	p, err := shapes.DefaultParams(shapes.TypeRectangular)
	if err != nil {
		t.Fatalf("DefaultParams failed: %v", err)
	}
	return p
}

func TestSaveAndLoadPresets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.json")

	store := NewPresetStore()
	preset := NewPreset("Garden", "Dense diagonal infill", rectangularShape(t), model.DefaultGenerationParams())
	store.Add(preset)

	if err := SavePresets(path, store); err != nil {
		t.Fatalf("SavePresets error: %v", err)
	}

	loaded, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets error: %v", err)
	}

	if len(loaded.Presets) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(loaded.Presets))
	}
	got := loaded.Presets[0]
	if got.Name != "Garden" {
		t.Errorf("expected 'Garden', got %q", got.Name)
	}
	if got.ID != preset.ID {
		t.Errorf("expected ID %q, got %q", preset.ID, got.ID)
	}
	if got.Shape.Type != shapes.TypeRectangular {
		t.Errorf("expected rectangular shape, got %q", got.Shape.Type)
	}
	if got.Generation.NumRods != preset.Generation.NumRods {
		t.Errorf("generation params not round-tripped: got %d rods", got.Generation.NumRods)
	}
}

func TestLoadPresets_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.json")

	store, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(store.Presets) != 0 {
		t.Errorf("expected empty store, got %d presets", len(store.Presets))
	}
	if store.Presets == nil {
		t.Error("Presets should not be nil")
	}
}

func TestPresetStore_FindAndRemove(t *testing.T) {
	store := NewPresetStore()
	a := NewPreset("A", "", rectangularShape(t), model.DefaultGenerationParams())
	b := NewPreset("B", "", rectangularShape(t), model.DefaultGenerationParams())
	store.Add(a)
	store.Add(b)

	if got := store.FindByName("B"); got == nil || got.ID != b.ID {
		t.Errorf("FindByName(B) = %v, want preset %q", got, b.ID)
	}
	if got := store.FindByID(a.ID); got == nil || got.Name != "A" {
		t.Errorf("FindByID(%q) = %v, want preset A", a.ID, got)
	}
	if store.FindByName("missing") != nil {
		t.Error("FindByName(missing) should be nil")
	}

	names := store.Names()
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("Names() = %v, want [A B]", names)
	}

	if !store.Remove(a.ID) {
		t.Error("Remove(a) should report true")
	}
	if store.Remove("nope") {
		t.Error("Remove(nope) should report false")
	}
	if len(store.Presets) != 1 || store.Presets[0].Name != "B" {
		t.Errorf("store after removal = %v, want only B", store.Names())
	}
}
