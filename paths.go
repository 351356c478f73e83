package statefile

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// DefaultPath returns the conventional backing file location for a tool:
// $XDG_STATE_HOME/<app>/state.json (~/.local/state/<app>/state.json on most
// Linux setups, platform equivalents elsewhere). State home rather than
// cache home: these files hold working data the tool expects back, and cache
// directories are fair game for cleaners.
func DefaultPath(app string) string {
	return filepath.Join(xdg.StateHome, app, "state.json")
}
