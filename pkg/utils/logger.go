package utils

import "go.uber.org/zap"

// NewLogger builds the process-wide zap logger. Debug mode switches to the
// development config (console encoder, debug level) so per-token correction
// and reload traces are readable; otherwise it is the production JSON config
// at info level.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
