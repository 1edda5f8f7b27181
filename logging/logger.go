package logging

import "go.uber.org/zap"

// New creates a zap logger for the given environment. Production gets the
// JSON encoder at info level, everything else the console encoder at debug.
func New(environment string) *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	if environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		logger = zap.NewExample()
	}
	return logger.Sugar()
}

// Nop returns a logger that discards everything, for tests and tools
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
