package logging

import (
	"go.uber.org/zap"
)

// Setup builds the application logger and installs it as the zap global.
// Debug selects the development config (console output, debug level).
// On failure an example logger is installed and the error returned.
func Setup(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewExample()
		zap.ReplaceGlobals(logger)
		return logger, err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
