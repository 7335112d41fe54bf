package leveled

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.ActiveCapacity != 4096 {
		t.Errorf("ActiveCapacity = %d, want 4096", opts.ActiveCapacity)
	}
	if opts.WarmThreshold != 8192 {
		t.Errorf("WarmThreshold = %d, want 8192", opts.WarmThreshold)
	}
	if opts.BloomFpRate != 0.01 {
		t.Errorf("BloomFpRate = %v, want 0.01", opts.BloomFpRate)
	}
}

func TestOptionsWithDefaultsBackfill(t *testing.T) {
	opts := Options{ActiveCapacity: 100}.withDefaults()
	if opts.WarmThreshold != 200 {
		t.Errorf("WarmThreshold = %d, want 200 (2x capacity)", opts.WarmThreshold)
	}
	if opts.Allocator == nil {
		t.Error("Allocator not defaulted")
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}

	opts = Options{BloomFpRate: 1.5}.withDefaults()
	if opts.BloomFpRate != 0 {
		t.Errorf("out-of-range BloomFpRate = %v, want 0 (disabled)", opts.BloomFpRate)
	}
}

func TestLoadOptionsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.yaml")
	content := `
active_capacity: 64
warm_threshold: 96
bloom_fp_rate: 0.05
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write options file: %v", err)
	}

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if opts.ActiveCapacity != 64 {
		t.Errorf("active_capacity: got %d", opts.ActiveCapacity)
	}
	if opts.WarmThreshold != 96 {
		t.Errorf("warm_threshold: got %d", opts.WarmThreshold)
	}
	if opts.BloomFpRate != 0.05 {
		t.Errorf("bloom_fp_rate: got %v", opts.BloomFpRate)
	}
}

func TestLoadOptionsKeepsDefaultsForMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.yaml")
	if err := os.WriteFile(path, []byte("active_capacity: 32\n"), 0644); err != nil {
		t.Fatalf("write options file: %v", err)
	}

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if opts.ActiveCapacity != 32 {
		t.Errorf("active_capacity: got %d", opts.ActiveCapacity)
	}
	if opts.BloomFpRate != 0.01 {
		t.Errorf("bloom_fp_rate lost its default: got %v", opts.BloomFpRate)
	}

	if _, err := LoadOptions(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
