package standards

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultTablesStrictlyIncreasing guards the built-in data: a non-increasing
// row would make the percentile bands overlap.
func TestDefaultTablesStrictlyIncreasing(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default standards invalid: %v", err)
	}
	for _, id := range Default().Exercises() {
		for _, g := range []Gender{Male, Female} {
			if _, ok := Default().Lookup(id, g); !ok {
				t.Errorf("%s has no %s standard", id, g)
			}
		}
	}
}

// TestMaleSquatStandard pins the male squat row used by the ranking examples.
func TestMaleSquatStandard(t *testing.T) {
	s, ok := Default().Lookup("squat", Male)
	if !ok {
		t.Fatal("missing male squat standard")
	}
	want := Standard{Beginner: 0.75, Intermediate: 1.25, Advanced: 1.5, Elite: 2.2, God: 2.8}
	if s != want {
		t.Errorf("male squat = %+v, want %+v", s, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Standard
		wantErr bool
	}{
		{name: "increasing", s: Standard{1, 2, 3, 4, 5}},
		{name: "equal neighbours", s: Standard{1, 2, 2, 4, 5}, wantErr: true},
		{name: "decreasing", s: Standard{1, 2, 3, 5, 4}, wantErr: true},
		{name: "zero beginner", s: Standard{0, 2, 3, 4, 5}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAgeFactor(t *testing.T) {
	tests := []struct {
		age  int
		want float64
	}{
		{16, 1.0},
		{18, 1.0},
		{35, 1.0},
		{36, 0.95},
		{45, 0.95},
		{50, 0.90},
		{60, 0.85},
		{64, 0.85},
		{65, 0.80},
		{90, 0.80},
	}
	for _, tt := range tests {
		if got := AgeFactor(tt.age); got != tt.want {
			t.Errorf("AgeFactor(%d) = %v, want %v", tt.age, got, tt.want)
		}
	}
}

func TestAliasesResolve(t *testing.T) {
	a := DefaultAliases()
	tests := map[string]string{
		"Back Squat":       "squat",
		"bench":            "bench_press",
		"OHP":              "overhead_press",
		"Bent-Over Row":    "barbell_row",
		"deadlift":         "deadlift",
		"Bulgarian  Split": "bulgarian_split",
	}
	for in, want := range tests {
		if got := a.Resolve(in); got != want {
			t.Errorf("Resolve(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseGender(t *testing.T) {
	for in, want := range map[string]Gender{"male": Male, "M": Male, " Female ": Female, "f": Female} {
		got, err := ParseGender(in)
		if err != nil || got != want {
			t.Errorf("ParseGender(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseGender("x"); err == nil {
		t.Error("expected error for unknown gender")
	}
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "standards.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadFileMergesOverrides verifies new exercises and aliases are added
// while the built-in tables stay available.
func TestLoadFileMergesOverrides(t *testing.T) {
	path := writeTemp(t, `
standards:
  Front Squat:
    male:   {beginner: 0.6, intermediate: 1.0, advanced: 1.3, elite: 1.8, god: 2.3}
    female: {beginner: 0.4, intermediate: 0.6, advanced: 1.0, elite: 1.3, god: 1.7}
aliases:
  fsq: front squat
`)
	table, aliases, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := table.Lookup("front_squat", Male); !ok {
		t.Error("front_squat override missing")
	}
	if _, ok := table.Lookup("squat", Male); !ok {
		t.Error("built-in squat lost after merge")
	}
	if got := aliases.Resolve("FSQ"); got != "front_squat" {
		t.Errorf("Resolve(FSQ) = %q, want front_squat", got)
	}
}

// TestLoadFileRejectsBadThresholds verifies misordered overrides fail loudly.
func TestLoadFileRejectsBadThresholds(t *testing.T) {
	path := writeTemp(t, `
standards:
  squat:
    male: {beginner: 1.0, intermediate: 0.9, advanced: 1.3, elite: 1.8, god: 2.3}
`)
	if _, _, err := LoadFile(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, _, err := LoadFile("/nonexistent/standards.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
