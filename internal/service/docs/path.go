package docs

import (
	"fmt"
	"strings"

	"ailurus/internal/config"
)

// ValidatePath checks a normalized (no leading/trailing slash) folder path.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if len(path) > config.MaxPathLength {
		return fmt.Errorf("path exceeds %d characters", config.MaxPathLength)
	}
	for _, segment := range strings.Split(path, "/") {
		if strings.TrimSpace(segment) == "" {
			return fmt.Errorf("path contains an empty segment")
		}
		if len(segment) > config.MaxFolderNameLength {
			return fmt.Errorf("path segment %q exceeds %d characters", segment, config.MaxFolderNameLength)
		}
	}
	return nil
}

// ParentPath returns the path one level up, or "" for a root-level path.
func ParentPath(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}
