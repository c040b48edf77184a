package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTileImage writes a white PNG of the given size into dir.
func writeTileImage(t *testing.T, dir, name string, w, h int) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
}

// ---------------------------------------------------------------------------
// TestRunTile - End-to-end tile command
// ---------------------------------------------------------------------------

func TestRunTile(t *testing.T) {
	t.Run("writes default output into the input directory", func(t *testing.T) {
		dir := t.TempDir()
		writeTileImage(t, dir, "1.png", 100, 50)
		writeTileImage(t, dir, "2.png", 80, 40)

		env, stdout, _ := testEnv()
		flags := &tileFlags{margins: unsetMargins()}

		if err := runTile(context.Background(), []string{dir}, flags, env); err != nil {
			t.Fatalf("runTile() error = %v", err)
		}

		outPath := filepath.Join(dir, "output.pdf")
		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Error("output does not start with %PDF")
		}
		if !strings.Contains(stdout.String(), "2 image(s)") {
			t.Errorf("stdout = %q, missing image count", stdout.String())
		}
	})

	t.Run("explicit output path with new directory", func(t *testing.T) {
		dir := t.TempDir()
		writeTileImage(t, dir, "1.png", 60, 30)
		outPath := filepath.Join(t.TempDir(), "nested", "tiles.pdf")

		env, _, _ := testEnv()
		flags := &tileFlags{output: outPath, margins: unsetMargins(), common: commonFlags{quiet: true}}

		if err := runTile(context.Background(), []string{dir}, flags, env); err != nil {
			t.Fatalf("runTile() error = %v", err)
		}
		if _, err := os.Stat(outPath); err != nil {
			t.Errorf("output not written: %v", err)
		}
	})

	t.Run("corrupt images reported as warnings", func(t *testing.T) {
		dir := t.TempDir()
		writeTileImage(t, dir, "1.png", 60, 30)
		if err := os.WriteFile(filepath.Join(dir, "2.png"), []byte("junk"), 0o644); err != nil {
			t.Fatalf("failed to write corrupt file: %v", err)
		}

		env, _, stderr := testEnv()
		flags := &tileFlags{margins: unsetMargins(), common: commonFlags{quiet: true}}

		if err := runTile(context.Background(), []string{dir}, flags, env); err != nil {
			t.Fatalf("runTile() error = %v", err)
		}
		if !strings.Contains(stderr.String(), "skipped") {
			t.Errorf("stderr = %q, missing skip warning", stderr.String())
		}
	})

	t.Run("missing directory argument", func(t *testing.T) {
		env, _, _ := testEnv()
		flags := &tileFlags{margins: unsetMargins()}

		err := runTile(context.Background(), nil, flags, env)
		if !errors.Is(err, ErrNoInput) {
			t.Errorf("error = %v, want ErrNoInput", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		env, _, _ := testEnv()
		flags := &tileFlags{margins: unsetMargins()}

		err := runTile(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}, flags, env)
		if err == nil {
			t.Error("expected error for missing directory")
		}
	})
}
