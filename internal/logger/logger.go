package logger

import "go.uber.org/zap"

// New returns a production logger, or a development one with debug output
// when debug is set.
func New(debug bool) *zap.SugaredLogger {
	build := zap.NewProduction
	if debug {
		build = zap.NewDevelopment
	}
	logger, err := build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}
