package codegen

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to path, creating the parent directory if needed.
// An existing file is replaced wholesale, so reruns are idempotent.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // generated source is committed and read by other tools
		return fmt.Errorf("failed to write generated file: %w", err)
	}
	return nil
}
