package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotPDF is returned when the -file argument names something that
// exists but does not carry a .pdf extension.
var ErrNotPDF = errors.New("file is not a PDF")

// CollectFiles resolves the input selection to a list of PDF paths. A
// single file must name an existing PDF. A directory is searched
// recursively and its matches are returned in sorted order. The .pdf
// extension is matched case-insensitively in both modes.
func CollectFiles(file, dir string) ([]string, error) {
	var files []string

	if file != "" {
		info, err := os.Stat(file)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("file not found: %s", file)
			}
			return nil, fmt.Errorf("cannot access file %s: %w", file, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("path is not a file: %s", file)
		}
		if !strings.EqualFold(filepath.Ext(file), ".pdf") {
			return nil, fmt.Errorf("%w: %s", ErrNotPDF, file)
		}
		files = append(files, file)
	}

	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("directory not found: %s", dir)
			}
			return nil, fmt.Errorf("cannot access directory %s: %w", dir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("path is not a directory: %s", dir)
		}

		var found []string
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".pdf") {
				return nil
			}
			// Follow symlinks the way a stat would; skip anything
			// that is not a regular file underneath.
			if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error scanning directory %s: %w", dir, err)
		}
		sort.Strings(found)
		files = append(files, found...)
	}

	return files, nil
}
