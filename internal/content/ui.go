package content

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"
)

// UI is the tree of interface strings of one language, addressed by dotted
// keys such as "hero.greeting".
type UI struct {
	tree   map[string]any
	logger *zap.Logger
}

func loadUI(fsys fs.FS, name string, logger *zap.Logger) (*UI, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return NewUI(tree, logger), nil
}

// NewUI wraps an already decoded string tree.
func NewUI(tree map[string]any, logger *zap.Logger) *UI {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UI{tree: tree, logger: logger}
}

// T returns the string at key. A missing key, or one that names a subtree,
// returns the key itself and logs a warning.
func (u *UI) T(key string) string {
	if u == nil {
		return key
	}
	var node any = u.tree
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			node = nil
			break
		}
		node = m[part]
	}
	s, ok := node.(string)
	if !ok {
		u.logger.Warn("translation missing", zap.String("key", key))
		return key
	}
	return s
}

// Tree returns the raw string tree, for the JSON API.
func (u *UI) Tree() map[string]any {
	if u == nil {
		return nil
	}
	return u.tree
}
