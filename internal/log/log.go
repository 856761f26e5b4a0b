// Package log is the process-wide logger. The helper runs headless, so
// Init points it at a file under ~/Library/Logs.
package log

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/lipgloss"
	cblog "github.com/charmbracelet/log"
)

// Logger embeds the Charm Logger
type Logger struct{ *cblog.Logger }

var (
	logger     *Logger
	initLogger sync.Once
	logFile    *os.File
	mu         sync.Mutex
)

// GetLogger returns the shared logger, writing to stderr until Init is called.
func GetLogger() *Logger {
	initLogger.Do(func() {
		logger = &Logger{newBase(os.Stderr)}
	})
	return logger
}

func newBase(w io.Writer) *cblog.Logger {
	styles := cblog.DefaultStyles()
	styles.Levels[cblog.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Foreground(lipgloss.Color("9"))
	styles.Levels[cblog.WarnLevel] = lipgloss.NewStyle().
		SetString(" WARN").
		Foreground(lipgloss.Color("3"))
	styles.Levels[cblog.InfoLevel] = lipgloss.NewStyle().
		SetString(" INFO").
		Foreground(lipgloss.Color("2"))
	styles.Levels[cblog.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Foreground(lipgloss.Color("4"))

	base := cblog.New(w)
	base.SetStyles(styles)
	base.SetReportTimestamp(true)
	base.SetLevel(cblog.InfoLevel)
	base.SetPrefix("gotoshell")
	return base
}

// Init redirects the logger to path (appending) at the given level. If the
// file cannot be opened the logger stays on stderr and the error is returned.
func Init(path, level string) error {
	l := GetLogger()

	if lvl, err := cblog.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	}

	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	l.SetOutput(f)
	return nil
}

// Close releases the log file opened by Init.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		GetLogger().SetOutput(os.Stderr)
		logFile.Close()
		logFile = nil
	}
}

// * Convenience wrappers

func Debug(msg interface{}, keyvals ...interface{}) { GetLogger().Logger.Debug(msg, keyvals...) }
func Info(msg interface{}, keyvals ...interface{})  { GetLogger().Logger.Info(msg, keyvals...) }
func Warn(msg interface{}, keyvals ...interface{})  { GetLogger().Logger.Warn(msg, keyvals...) }
func Error(msg interface{}, keyvals ...interface{}) { GetLogger().Logger.Error(msg, keyvals...) }
func Fatal(msg interface{}, keyvals ...interface{}) { GetLogger().Logger.Fatal(msg, keyvals...) }
