package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const envSaveDir = "EDICTSAVE_SAVE_DIR"

// resolveSaveDir picks the save directory from the flag (which already covers the
// environment), falling back to ./save.
func resolveSaveDir(flag string) string {
	if dir := strings.TrimSpace(flag); dir != "" {
		return filepath.Clean(dir)
	}
	return filepath.Join(".", "save")
}

// resolveCatalogPath defaults the catalog to the user cache directory, or to the
// save directory when no cache directory is known.
func resolveCatalogPath(flag, dir string) (string, error) {
	if p := strings.TrimSpace(flag); p != "" {
		return filepath.Clean(p), nil
	}
	if cache, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cache, "edictsave", "catalog.db"), nil
	}
	if dir == "" {
		return "", fmt.Errorf("--catalog is required when no cache directory is available")
	}
	return filepath.Join(dir, ".catalog.db"), nil
}

// resolveArchiveOut defaults the archive of a slot directory to <slot>.edz beside it.
func resolveArchiveOut(slotDir, outFlag string) (string, error) {
	if out := strings.TrimSpace(outFlag); out != "" {
		outPath := filepath.Clean(out)
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return "", err
		}
		return outPath, nil
	}
	clean := filepath.Clean(slotDir)
	base := filepath.Base(clean)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid slot directory: %q", slotDir)
	}
	return filepath.Join(filepath.Dir(clean), base+".edz"), nil
}
