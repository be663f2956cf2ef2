package usecase

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SaveRecord writes a record to <dir>/<key>.json, creating the
// directory if needed. Slashes in the key are flattened to underscores
// so a repository full name yields owner_name.json.
func SaveRecord(dir, key string, record any) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal record %s: %w", key, err)
	}

	path := filepath.Join(dir, strings.ReplaceAll(key, "/", "_")+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
