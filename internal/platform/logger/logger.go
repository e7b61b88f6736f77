// Package logger builds the process-wide zap logger.
package logger

import (
	"go.uber.org/zap"
)

// NewNamed returns a named zap logger configured for the environment:
// JSON output in production, console output otherwise.
func NewNamed(env, name string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}
