// Package assets loads the per-system icon images shown next to tissue
// groups. Icons are optional: a missing directory or file yields no image.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mirbrowse/server/internal/model"
)

// Icons holds icon bytes keyed by system key (the icon file stem, e.g.
// "cardio").
type Icons struct {
	images map[string][]byte
}

// Key returns the lookup key of a system icon file name.
func Key(iconFile string) string {
	return strings.TrimSuffix(iconFile, filepath.Ext(iconFile))
}

// LoadIcons reads the icon of every system from dir. Files that do not exist
// are skipped; other read errors are returned.
func LoadIcons(dir string) (*Icons, error) {
	icons := &Icons{images: make(map[string][]byte)}
	if dir == "" {
		return icons, nil
	}
	for _, sys := range model.Systems() {
		data, err := os.ReadFile(filepath.Join(dir, sys.Icon))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read icon %s: %w", sys.Icon, err)
		}
		icons.images[Key(sys.Icon)] = data
	}
	return icons, nil
}

// Get returns the icon for key, if present.
func (i *Icons) Get(key string) ([]byte, bool) {
	if i == nil {
		return nil, false
	}
	data, ok := i.images[key]
	return data, ok
}

// Len returns the number of loaded icons.
func (i *Icons) Len() int {
	if i == nil {
		return 0
	}
	return len(i.images)
}
