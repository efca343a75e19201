package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// toZapLevel maps our level names onto zap; anything unknown logs at info.
func toZapLevel(level string) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	}
	return zapcore.InfoLevel
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.MessageKey = "event"
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}

// newEncoder returns a JSON encoder for FormatJSON and a console one otherwise.
func newEncoder(format string) zapcore.Encoder {
	cfg := encoderConfig()
	if format == FormatJSON {
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func newZapLogger(level, format string, out zapcore.WriteSyncer) *Logger {
	core := zapcore.NewCore(newEncoder(format), zapcore.Lock(out), zap.NewAtomicLevelAt(toZapLevel(level)))
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}

func stdout() zapcore.WriteSyncer { return zapcore.AddSync(os.Stdout) }
