// Package logging builds the zap loggers used across the tool.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvProduction selects JSON output with ISO8601 timestamps. Any other value
// selects the colored development console encoder.
const EnvProduction = "production"

// New builds a logger for env writing to stderr.
func New(env string) (*zap.Logger, error) {
	return newConfig(env).Build()
}

// NewWithWriter builds a logger for env writing to w instead of stderr.
func NewWithWriter(env string, w io.Writer) *zap.Logger {
	cfg := newConfig(env)

	var encoder zapcore.Encoder
	if env == EnvProduction {
		encoder = zapcore.NewJSONEncoder(cfg.EncoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(cfg.EncoderConfig)
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), cfg.Level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

func newConfig(env string) zap.Config {
	var cfg zap.Config
	if env == EnvProduction {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}
