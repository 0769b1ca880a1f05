// Package logging builds the zap logger shared by the server and the commands.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pageza/recipe-api/backend/config"
)

// New returns a development console logger for local and test runs and a JSON production
// logger everywhere else.
func New(env config.Environment, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	var zc zap.Config
	if env.Verbose() {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.With(zap.String("env", string(env))), nil
}

// MustNew is New for command entrypoints. An unusable level falls back to info and the
// problem is logged.
func MustNew(env config.Environment, level string) *zap.Logger {
	logger, err := New(env, level)
	if err == nil {
		return logger
	}
	fallback, ferr := New(env, "info")
	if ferr != nil {
		fallback = zap.Must(zap.NewProduction())
	}
	fallback.Warn("invalid log level, using info", zap.String("level", level), zap.Error(err))
	return fallback
}
