package config

import (
	"go.uber.org/zap"
)

// Log is the process-wide logger. It starts as a no-op so packages can log
// before InitLogger runs (tests, the seeder).
var Log = zap.NewNop().Sugar()

// InitLogger builds the global logger for env. Production gets JSON output at
// info level, everything else the colourful development encoder.
func InitLogger(env string) error {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	Log = logger.Sugar()
	return nil
}

// SyncLogger flushes buffered log entries.
func SyncLogger() {
	_ = Log.Sync()
}
