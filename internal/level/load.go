package level

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Load picks a loader by file extension: .tmx for Tiled maps, .json for
// layouts.
func Load(fsys fs.FS, name string, opts Options) (*Level, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".tmx":
		return LoadTMX(fsys, name, opts)
	case ".json":
		f, err := fsys.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open layout: %w", err)
		}
		defer f.Close()

		lvl, err := LoadLayout(f, opts)
		if err != nil {
			return nil, err
		}
		if lvl.Name == "" {
			lvl.Name = strings.TrimSuffix(path.Base(name), path.Ext(name))
		}
		return lvl, nil
	}
	return nil, fmt.Errorf("%s: %w", name, ErrUnknownFormat)
}
