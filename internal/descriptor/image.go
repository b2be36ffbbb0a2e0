package descriptor

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"filebrowser/internal/fileinfo"
)

// NewImagePredicate returns a Filter matching files whose lower-cased base
// name matches any of the doublestar patterns (e.g. "*.{png,webp}").
func NewImagePredicate(patterns []string) (Filter, error) {
	compiled := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid image pattern %q", p)
		}
		compiled = append(compiled, p)
	}
	return func(e fileinfo.Entry) bool {
		if e.IsDir() {
			return false
		}
		name := strings.ToLower(e.Name())
		for _, p := range compiled {
			if ok, _ := doublestar.Match(p, name); ok {
				return true
			}
		}
		return false
	}, nil
}
