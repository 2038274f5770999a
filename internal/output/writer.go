package output

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"tiny-raytracer/internal/encode"
)

// WriteAll encodes img to every path concurrently, choosing each format by
// extension. It returns the first failure; no partial output is cleaned up.
func WriteAll(img image.Image, paths []string) error {
	var g errgroup.Group
	for _, p := range paths {
		g.Go(func() error {
			return WriteFile(img, p)
		})
	}
	return g.Wait()
}

// WriteFile encodes img to path, creating parent directories as needed.
func WriteFile(img image.Image, path string) (err error) {
	format, err := encode.FormatFromPath(path)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("output: mkdir %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("output: close %s: %w", path, cerr)
		}
	}()

	if err := encode.Encode(f, format, img); err != nil {
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	return nil
}
