package utils

import "go.uber.org/zap"

// Logger is the logging handle callers inject into long-running jobs.
// The zero value is unusable; use NewLogger or NopLogger.
type Logger struct {
	s *zap.SugaredLogger
}

// NewLogger builds a production-configured logger.
func NewLogger() (*Logger, error) {
	z, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &Logger{s: z.Sugar()}, nil
}

// NewDevelopmentLogger builds a console-friendly logger.
func NewDevelopmentLogger() (*Logger, error) {
	z, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &Logger{s: z.Sugar()}, nil
}

// NopLogger discards everything; it is the default for library callers
// that do not care about logging.
func NopLogger() *Logger {
	return &Logger{s: zap.NewNop().Sugar()}
}

func (l *Logger) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
func (l *Logger) Info(msg string, kv ...interface{})  { l.s.Infow(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }
func (l *Logger) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }

// Sync flushes buffered entries.
func (l *Logger) Sync() error { return l.s.Sync() }
