// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bundle packs a batch of ProPresenter documents into a single
// .pro6x archive for import.
package bundle

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Path returns the bundle location for a prefix. A bundle of "pro6"
// documents is <dir>/bundle-<prefix>.pro6x.
func Path(dir, prefix, docExt string) string {
	return filepath.Join(dir, "bundle-"+prefix+"."+strings.TrimPrefix(docExt, ".")+"x")
}

// Remove deletes a previous bundle. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing bundle %s: %w", path, err)
	}
	return nil
}

// Write zips every *.<ext> file in outputDir into a new bundle at path.
// Entries are named <base of outputDir>/<file> and written in name order.
// It returns the number of documents bundled.
func Write(path, outputDir, ext string) (int, error) {
	files, err := filepath.Glob(filepath.Join(outputDir, "*."+strings.TrimPrefix(ext, ".")))
	if err != nil {
		return 0, fmt.Errorf("listing %s: %w", outputDir, err)
	}
	sort.Strings(files)

	if err := Remove(path); err != nil {
		return 0, err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating bundle directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating bundle %s: %w", path, err)
	}

	zw := zip.NewWriter(f)
	prefix := filepath.Base(outputDir)
	for _, file := range files {
		if err := add(zw, prefix+"/"+filepath.Base(file), file); err != nil {
			zw.Close()
			f.Close()
			return 0, err
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return 0, fmt.Errorf("finishing bundle %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("closing bundle %s: %w", path, err)
	}
	return len(files), nil
}

func add(zw *zip.Writer, name, file string) error {
	src, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening %s: %w", file, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", file, err)
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("header for %s: %w", file, err)
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
