package utils

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ConfigureLogger points the standard logger at stdout, a size-rotated
// file, or both, depending on the configured output mode.
func ConfigureLogger(output, filePath string, maxSizeMB, maxBackups, maxAgeDays int, compress bool) {
	if output == "stdout" || filePath == "" {
		log.SetOutput(os.Stdout)
		return
	}

	rotated := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   compress,
	}

	switch output {
	case "file":
		log.SetOutput(rotated)
	case "both":
		log.SetOutput(io.MultiWriter(os.Stdout, rotated))
	default:
		log.SetOutput(os.Stdout)
	}
}
