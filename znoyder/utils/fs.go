package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// zuulConfigNames are the file names Zuul reads configuration from when
// they are plain files rather than directories.
var zuulConfigNames = map[string]bool{
	"zuul.d":  true,
	".zuul.d": true,
	"zuul":    true,
	".zuul":   true,
}

func IsZuulConfigFile(path string) bool {
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return true
	}
	return zuulConfigNames[filepath.Base(path)]
}

// MatchesAny reports whether the base name or the slash-separated relative
// path matches one of the glob patterns.
func MatchesAny(patterns []string, rel string) bool {
	rel = filepath.ToSlash(rel)
	base := filepath.Base(rel)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(strings.TrimSuffix(pattern, "/"))
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// ExpandPath resolves a user-supplied config path: a leading ~ becomes
// the home directory and the result is absolute and clean.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot expand %s: %w", path, err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}

	return filepath.Abs(path)
}
