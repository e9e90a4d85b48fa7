// Package log holds the process-wide zap logger. It writes WARN and above to
// stderr until Init is called, so stdout stays reserved for command output.
package log

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger.
type Options struct {
	// Level is one of DEBUG, INFO, WARN, ERROR, FATAL. Default WARN.
	Level string
	// Mode is SIMPLE or FULL. Default FULL.
	Mode string
	// Sink is CONSOLE, FILE or MULTI. Default CONSOLE.
	Sink string
	// Filename is the rotated log file used by the FILE and MULTI sinks.
	Filename string
}

var levelMap = map[string]zapcore.Level{
	"DEBUG": zapcore.DebugLevel,
	"INFO":  zapcore.InfoLevel,
	"WARN":  zapcore.WarnLevel,
	"ERROR": zapcore.ErrorLevel,
	"FATAL": zapcore.FatalLevel,
}

type modeEncoder func() zapcore.Encoder

var modeMap = map[string]modeEncoder{
	"SIMPLE": simpleEncoder,
	"FULL":   fullEncoder,
}

type SinkType int

const (
	SinkConsole SinkType = iota // default
	SinkFile
	SinkMulti
)

var sinkMap = map[string]SinkType{
	"":        SinkConsole,
	"CONSOLE": SinkConsole,
	"FILE":    SinkFile,
	"MULTI":   SinkMulti,
}

var (
	mu     sync.RWMutex
	logger *zap.Logger
	level  = "WARN"
)

func init() {
	if err := Init(Options{}); err != nil {
		panic(err)
	}
}

// Init replaces the process logger.
func Init(opts Options) error {
	if opts.Level == "" {
		opts.Level = "WARN"
	}
	if opts.Mode == "" {
		opts.Mode = "FULL"
	}

	encoder, ok := modeMap[strings.ToUpper(opts.Mode)]
	if !ok {
		return fmt.Errorf("illegal log mode: %s", opts.Mode)
	}
	zapLevel, ok := levelMap[strings.ToUpper(opts.Level)]
	if !ok {
		return fmt.Errorf("illegal log level: %s", opts.Level)
	}
	sink, ok := sinkMap[strings.ToUpper(opts.Sink)]
	if !ok {
		return fmt.Errorf("illegal log sink: %s", opts.Sink)
	}

	var ws zapcore.WriteSyncer
	switch sink {
	case SinkFile, SinkMulti:
		if opts.Filename == "" {
			return fmt.Errorf("log sink %s requires a filename", strings.ToUpper(opts.Sink))
		}
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.Filename,
			MaxSize:    10, // megabytes
			MaxAge:     30, // days
			MaxBackups: 7,
			LocalTime:  true,
		})
		if sink == SinkMulti {
			ws = zapcore.NewMultiWriteSyncer(zapcore.Lock(os.Stderr), ws)
		}
	default:
		ws = zapcore.Lock(os.Stderr)
	}

	Use(zap.New(zapcore.NewCore(encoder(), ws, zapLevel), zap.AddCaller()))

	mu.Lock()
	level = strings.ToUpper(opts.Level)
	mu.Unlock()
	return nil
}

// Use installs an already built logger, e.g. an observer in tests.
func Use(l *zap.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

// L returns the process logger.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger.Sugar()
}

// Named returns a child logger tagged with name.
func Named(name string) *zap.SugaredLogger {
	return L().Named(name)
}

// Level returns the configured level name.
func Level() string {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// Sync flushes buffered entries.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return logger.Sync()
}

func simpleEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.CallerKey = ""
	cfg.FunctionKey = ""
	cfg.EncodeTime = nil
	cfg.EncodeLevel = nil
	cfg.ConsoleSeparator = "|"
	return zapcore.NewConsoleEncoder(cfg)
}

func fullEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.FunctionKey = "func"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.ConsoleSeparator = "|"
	return zapcore.NewConsoleEncoder(cfg)
}
