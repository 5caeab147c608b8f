// Package logging sends the game log to a size-rotated file so it never
// draws over the terminal UI.
package logging

import (
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger writing to path, rotated at maxMB megabytes. The
// returned closer flushes and closes the current file.
func New(path string, maxMB int) (*log.Logger, io.Closer) {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxMB,
		MaxBackups: 3,
		Compress:   false,
	}
	return log.New(w, "", log.LstdFlags|log.Lmsgprefix), w
}
