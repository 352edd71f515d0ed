package log

import (
	"fmt"
	"io"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/inconshreveable/log15/term"
	"github.com/mattn/go-colorable"
)

var srvLog = log15.New()

const (
	LevelCrit  = log15.LvlCrit
	LevelError = log15.LvlError
	LevelWarn  = log15.LvlWarn
	LevelInfo  = log15.LvlInfo
	LevelDebug = log15.LvlDebug
)

func init() {
	Setup(LevelInfo, false, false)
}

// Setup change the log config immediately
// The lv is higher the more logs would be visible
func Setup(lv log15.Lvl, toFile bool, showCodeLine bool) {
	useColor := term.IsTty(os.Stdout.Fd()) && os.Getenv("TERM") != "dumb"
	output := io.Writer(os.Stderr)
	if useColor {
		output = colorable.NewColorableStderr()
	}
	handler := log15.StreamHandler(output, log15.TerminalFormat())
	if showCodeLine {
		handler = log15.CallerFileHandler(handler)
	}
	if toFile {
		handler = log15.MultiHandler(
			handler,
			FileHandler(logFilePath, log15.JsonFormat()),
		)
	}
	srvLog.SetHandler(log15.LvlFilterHandler(lv, handler))
}

// SetHandler replaces the output handler. Tests use it to capture log records.
func SetHandler(h log15.Handler) {
	srvLog.SetHandler(h)
}

// ParseLevel converts a level name like "info" or a number 1-5 into log level
func ParseLevel(s string) (log15.Lvl, error) {
	switch s {
	case "1":
		return LevelCrit, nil
	case "2":
		return LevelError, nil
	case "3":
		return LevelWarn, nil
	case "4":
		return LevelInfo, nil
	case "5":
		return LevelDebug, nil
	}
	lv, err := log15.LvlFromString(s)
	if err != nil {
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return lv, nil
}

func Debug(msg string, ctx ...interface{}) {
	srvLog.Debug(msg, ctx...)
}

func Debugf(format string, values ...interface{}) {
	srvLog.Debug(fmt.Sprintf(format, values...))
}

func Info(msg string, ctx ...interface{}) {
	srvLog.Info(msg, ctx...)
}

func Infof(format string, values ...interface{}) {
	srvLog.Info(fmt.Sprintf(format, values...))
}

func Warn(msg string, ctx ...interface{}) {
	srvLog.Warn(msg, ctx...)
}

func Warnf(format string, values ...interface{}) {
	srvLog.Warn(fmt.Sprintf(format, values...))
}

func Error(msg string, ctx ...interface{}) {
	srvLog.Error(msg, ctx...)
}

func Errorf(format string, values ...interface{}) {
	srvLog.Error(fmt.Sprintf(format, values...))
}

func Crit(msg string, ctx ...interface{}) {
	srvLog.Crit(msg, ctx...)
	os.Exit(1)
}

func Critf(format string, values ...interface{}) {
	srvLog.Crit(fmt.Sprintf(format, values...))
	os.Exit(1)
}

// Lazy allows you to defer calculation of a logged value that is expensive
// to compute until it is certain that it must be evaluated with the given filters.
type Lazy = log15.Lazy
