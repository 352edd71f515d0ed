package log

import (
	"io"
	"os"
	"path/filepath"

	"github.com/inconshreveable/log15"
)

const (
	logDir      = "log"
	logFileName = "glemo-nft.log"
)

var (
	logFilePath = filepath.Join(logDir, logFileName)

	// Hub holds the opened log file so it can be closed before re-setup
	Hub ClosingHandler
)

type ClosingHandler struct {
	io.WriteCloser
	log15.Handler
}

func (h *ClosingHandler) Close() error {
	return h.WriteCloser.Close()
}

// SetLogDir moves the log file into dir. It takes effect at the next Setup.
func SetLogDir(dir string) {
	logFilePath = filepath.Join(dir, logDir, logFileName)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

func fileHandler(path string, fmtr log15.Format) (log15.Handler, error) {
	if Hub.WriteCloser != nil {
		Hub.Close()
	}
	f, err := openLogFile(path)
	if err != nil {
		return nil, err
	}
	Hub = ClosingHandler{f, log15.StreamHandler(f, fmtr)}
	return Hub, nil
}

// FileHandler writes records into the file at path
func FileHandler(path string, fmtr log15.Format) log15.Handler {
	h, err := fileHandler(path, fmtr)
	if err != nil {
		panic(err)
	}
	return h
}
