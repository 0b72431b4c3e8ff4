package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"idextract/constants"
	"idextract/internal/extract"
)

// ListImages enumerates the image files directly under root, filtered by
// the allowed extensions, skipping hidden files and subdirectories.
// Enumeration order does not matter downstream (the aggregator re-sorts by
// identifier), but a sorted list keeps logs reproducible.
func ListImages(root string) ([]extract.Job, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("input directory is required")
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var jobs []extract.Job
	for _, entry := range entries {
		if entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		ext := constants.NormalizeExt(filepath.Ext(entry.Name()))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			continue
		}
		jobs = append(jobs, extract.Job{
			Filename: entry.Name(),
			Path:     filepath.Join(root, entry.Name()),
		})
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Filename < jobs[j].Filename })
	return jobs, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
