package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"travel-agent/internal/application/port/output"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ output.LoggerPort = (*LoggerAdapter)(nil)

type Config struct {
	Dir   string
	Level string
}

func DefaultConfig() Config {
	return Config{
		Dir:   "log",
		Level: "debug",
	}
}

// LoggerAdapter writes JSON lines for one run to <dir>/<timestamp>_<name>.log.
// Loggers derived with WithField share the file; only the root closes it.
type LoggerAdapter struct {
	sugar *zap.SugaredLogger
	file  *os.File
}

func NewLoggerAdapter(cfg Config, runName string) (*LoggerAdapter, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02_15-04-05"), sanitize(runName))
	file, err := os.Create(filepath.Join(cfg.Dir, filename))
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.MessageKey = "message"
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(file), level)

	return &LoggerAdapter{
		sugar: zap.New(core).Sugar(),
		file:  file,
	}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *LoggerAdapter {
	return &LoggerAdapter{sugar: zap.NewNop().Sugar()}
}

func (l *LoggerAdapter) Debug(msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

func (l *LoggerAdapter) Info(msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

func (l *LoggerAdapter) Warn(msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

func (l *LoggerAdapter) Error(msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}

func (l *LoggerAdapter) WithField(key string, value any) output.LoggerPort {
	return &LoggerAdapter{sugar: l.sugar.With(key, value)}
}

func (l *LoggerAdapter) WithFields(fields map[string]any) output.LoggerPort {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &LoggerAdapter{sugar: l.sugar.With(args...)}
}

func (l *LoggerAdapter) Close() error {
	_ = l.sugar.Sync()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, s)
	s = strings.Trim(s, "_")
	if s == "" {
		return "run"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
