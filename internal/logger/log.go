package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/config"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/gelf"
)

// Init installs the default slog logger. Records go to stdout, to a rotating
// file when configured and to a GELF endpoint when configured. The returned
// closer releases the file and the UDP socket.
func Init(cfg config.LogConfig) io.Closer {
	level := parseLevel(cfg.Level)

	var writers []io.Writer
	var closers multiCloser
	if cfg.Console {
		writers = append(writers, os.Stdout)
	}
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			LocalTime:  true,
		}
		writers = append(writers, lj)
		closers = append(closers, lj)
	}
	var gelfErr error
	if cfg.GelfAddr != "" {
		gw, err := gelf.New(cfg.GelfAddr, "fleetdocs")
		if err != nil {
			gelfErr = err
		} else {
			writers = append(writers, gw)
			closers = append(closers, gw)
		}
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	h := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
	if gelfErr != nil {
		Warn("gelf init failed", "addr", cfg.GelfAddr, "err", gelfErr)
	}
	Info("logger initialized", "level", cfg.Level, "file", cfg.File, "gelf", cfg.GelfAddr)
	return closers
}

func Info(msg string, args ...any) { slog.Info(msg, args...) }
func Warn(msg string, args ...any) { slog.Warn(msg, args...) }

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
