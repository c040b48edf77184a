package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	nbkit "github.com/alnah/go-nbkit"
)

// writeSplitNotebook writes a notebook with n code cells and returns its path.
func writeSplitNotebook(t *testing.T, dir string, n int) string {
	t.Helper()

	cells := make([]json.RawMessage, n)
	for i := range cells {
		cells[i] = json.RawMessage(fmt.Sprintf(`{"cell_type": "code", "source": ["x = %d"], "outputs": []}`, i))
	}
	nb := &nbkit.Notebook{
		Cells:       cells,
		Metadata:    json.RawMessage(`{"kernelspec": {"language": "python"}}`),
		Format:      4,
		FormatMinor: 5,
	}
	path := filepath.Join(dir, "input.ipynb")
	if err := nb.Write(path); err != nil {
		t.Fatalf("failed to write notebook: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestBuildPlan - Plan derivation from flags
// ---------------------------------------------------------------------------

func TestBuildPlan(t *testing.T) {
	t.Run("explicit counts", func(t *testing.T) {
		env, _, stderr := testEnv()

		plan, err := buildPlan("5,3,2", 0, 10, false, env)
		if err != nil {
			t.Fatalf("buildPlan() error = %v", err)
		}
		want := []int{5, 3, 2}
		if !plansEqual(plan, want) {
			t.Errorf("plan = %v, want %v", plan, want)
		}
		if stderr.Len() != 0 {
			t.Errorf("unexpected note: %s", stderr.String())
		}
	})

	t.Run("counts reconciled with note", func(t *testing.T) {
		env, _, stderr := testEnv()

		plan, err := buildPlan("8,5,5", 0, 10, false, env)
		if err != nil {
			t.Fatalf("buildPlan() error = %v", err)
		}
		want := []int{8, 2, 0}
		if !plansEqual(plan, want) {
			t.Errorf("plan = %v, want %v", plan, want)
		}
		if !strings.Contains(stderr.String(), "counts adjusted") {
			t.Errorf("stderr = %q, want adjustment note", stderr.String())
		}
	})

	t.Run("quiet suppresses the note", func(t *testing.T) {
		env, _, stderr := testEnv()

		if _, err := buildPlan("8,5,5", 0, 10, true, env); err != nil {
			t.Fatalf("buildPlan() error = %v", err)
		}
		if stderr.Len() != 0 {
			t.Errorf("stderr = %q, want empty in quiet mode", stderr.String())
		}
	})

	t.Run("trailing comma fills the remainder", func(t *testing.T) {
		env, _, _ := testEnv()

		plan, err := buildPlan("5,3,", 0, 10, true, env)
		if err != nil {
			t.Fatalf("buildPlan() error = %v", err)
		}
		want := []int{5, 3, 2}
		if !plansEqual(plan, want) {
			t.Errorf("plan = %v, want %v", plan, want)
		}
	})

	t.Run("even distribution from files", func(t *testing.T) {
		env, _, _ := testEnv()

		plan, err := buildPlan("", 3, 10, false, env)
		if err != nil {
			t.Fatalf("buildPlan() error = %v", err)
		}
		want := []int{4, 3, 3}
		if !plansEqual(plan, want) {
			t.Errorf("plan = %v, want %v", plan, want)
		}
	})

	t.Run("counts win over files", func(t *testing.T) {
		env, _, _ := testEnv()

		plan, err := buildPlan("10", 3, 10, true, env)
		if err != nil {
			t.Fatalf("buildPlan() error = %v", err)
		}
		if !plansEqual(plan, []int{10}) {
			t.Errorf("plan = %v, want [10]", plan)
		}
	})

	t.Run("invalid counts", func(t *testing.T) {
		env, _, _ := testEnv()

		_, err := buildPlan("5,abc", 0, 10, false, env)
		if !errors.Is(err, nbkit.ErrInvalidCounts) {
			t.Errorf("error = %v, want ErrInvalidCounts", err)
		}
	})

	t.Run("neither counts nor files", func(t *testing.T) {
		env, _, _ := testEnv()

		_, err := buildPlan("", 0, 10, false, env)
		if !errors.Is(err, ErrUsage) {
			t.Errorf("error = %v, want ErrUsage", err)
		}
	})

	t.Run("too many files", func(t *testing.T) {
		env, _, _ := testEnv()

		_, err := buildPlan("", 20, 10, false, env)
		if !errors.Is(err, nbkit.ErrInvalidFileCount) {
			t.Errorf("error = %v, want ErrInvalidFileCount", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPlansEqual - Plan comparison
// ---------------------------------------------------------------------------

func TestPlansEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b []int
		want bool
	}{
		{"equal", []int{1, 2}, []int{1, 2}, true},
		{"different values", []int{1, 2}, []int{2, 1}, false},
		{"different lengths", []int{1}, []int{1, 0}, false},
		{"both empty", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plansEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("plansEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunSplit - End-to-end split command
// ---------------------------------------------------------------------------

func TestRunSplit(t *testing.T) {
	t.Run("splits into numbered files", func(t *testing.T) {
		inDir := t.TempDir()
		outDir := t.TempDir()
		input := writeSplitNotebook(t, inDir, 10)

		env, stdout, _ := testEnv()
		flags := &splitFlags{counts: "5,3,", output: outDir}

		if err := runSplit([]string{input}, flags, env); err != nil {
			t.Fatalf("runSplit() error = %v", err)
		}

		wantCells := []int{5, 3, 2}
		for i, want := range wantCells {
			path := filepath.Join(outDir, fmt.Sprintf("%d.ipynb", i+1))
			nb, err := nbkit.ReadNotebook(path)
			if err != nil {
				t.Fatalf("reading %s: %v", path, err)
			}
			if len(nb.Cells) != want {
				t.Errorf("%s has %d cells, want %d", path, len(nb.Cells), want)
			}
			if string(nb.Metadata) == "{}" {
				t.Errorf("%s lost notebook metadata", path)
			}
		}

		if !strings.Contains(stdout.String(), "Split 10 cells into 3 file(s)") {
			t.Errorf("stdout = %q, missing summary", stdout.String())
		}
	})

	t.Run("even split via files flag", func(t *testing.T) {
		inDir := t.TempDir()
		outDir := t.TempDir()
		input := writeSplitNotebook(t, inDir, 7)

		env, _, _ := testEnv()
		flags := &splitFlags{files: 2, output: outDir, common: commonFlags{quiet: true}}

		if err := runSplit([]string{input}, flags, env); err != nil {
			t.Fatalf("runSplit() error = %v", err)
		}

		first, err := nbkit.ReadNotebook(filepath.Join(outDir, "1.ipynb"))
		if err != nil {
			t.Fatalf("reading first part: %v", err)
		}
		if len(first.Cells) != 4 {
			t.Errorf("first part has %d cells, want 4", len(first.Cells))
		}
	})

	t.Run("missing input path", func(t *testing.T) {
		env, _, _ := testEnv()

		err := runSplit(nil, &splitFlags{counts: "1"}, env)
		if !errors.Is(err, ErrNoInput) {
			t.Errorf("error = %v, want ErrNoInput", err)
		}
	})

	t.Run("unreadable notebook", func(t *testing.T) {
		env, _, _ := testEnv()

		err := runSplit([]string{filepath.Join(t.TempDir(), "nope.ipynb")}, &splitFlags{counts: "1"}, env)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
}
