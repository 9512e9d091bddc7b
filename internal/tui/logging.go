package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// OpenLogger opens (appending) a log file for the viewer, which cannot log
// to the terminal it is drawing on. The returned close func closes the file.
func OpenLogger(path, level string) (*log.Logger, func() error, error) {
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := log.New(logFile)
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger, logFile.Close, nil
}
