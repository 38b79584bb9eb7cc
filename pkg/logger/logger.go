package logger

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/juju/lumberjack/v2"
)

// Level уровень логирования
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Параметры ротации лог-файла по умолчанию
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 5
)

// ErrInvalidLevel возвращается при неизвестном уровне логирования
var ErrInvalidLevel = errors.New("logger: invalid log level")

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// Logger уровневый логгер с printf-интерфейсом.
// Пишет в stdout и (опционально) в файл с ротацией.
type Logger struct {
	level Level
	out   *log.Logger
	file  io.Closer
}

// Options параметры файлового вывода
type Options struct {
	MaxSizeMB  int
	MaxBackups int
}

// New создает логгер, пишущий в stdout и в файл filePath.
// Пустой filePath - только stdout.
func New(filePath string, level string) (*Logger, error) {
	return NewWithOptions(filePath, level, Options{
		MaxSizeMB:  DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
	})
}

// NewWithOptions создает логгер с заданными параметрами ротации
func NewWithOptions(filePath string, level string, opts Options) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	if filePath == "" {
		return NewWithWriter(os.Stdout, lvl), nil
	}

	rotating := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		Compress:   true,
	}

	l := NewWithWriter(io.MultiWriter(os.Stdout, rotating), lvl)
	l.file = rotating
	return l, nil
}

// NewWithWriter создает логгер поверх произвольного writer (используется в тестах)
func NewWithWriter(w io.Writer, level Level) *Logger {
	return &Logger{
		level: level,
		out:   log.New(w, "", log.LstdFlags|log.Lmicroseconds),
	}
}

// ParseLevel разбирает уровень логирования из конфигурации
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.write(LevelDebug, format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.write(LevelInfo, format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.write(LevelWarn, format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.write(LevelError, format, v...)
}

// Fatal пишет сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.out.Printf("[FATAL] "+format, v...)
	l.Close()
	os.Exit(1)
}

// Close закрывает файл логов, если он открыт
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) write(level Level, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf("["+levelNames[level]+"] "+format, v...)
}
