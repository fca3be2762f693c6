package logger

import (
	"log"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global *zap.Logger

// Init builds the process-wide logger: JSON in prod-like environments,
// colored console output everywhere else.
func Init(appEnv string) *zap.Logger {
	var cfg zap.Config

	env := strings.ToLower(strings.TrimSpace(appEnv))
	if env == "prod" || env == "production" || env == "release" {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	global = l
	return l
}

func L() *zap.Logger {
	if global == nil {
		return Init("dev")
	}
	return global
}
