package compkey

import "github.com/go-kit/log"

var logger log.Logger = log.NewNopLogger()

// SetLogger directs the package's debug logging to the given logger.
// Passing nil restores the default no-op logger. Interning is hot-path
// code, so only structural events (minting, purging) are logged.
func SetLogger(l log.Logger) {
	if l == nil {
		l = log.NewNopLogger()
	}
	trieMu.Lock()
	logger = l
	trieMu.Unlock()
}
