package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lixenwraith/vi-piano/constants"
)

const (
	logDir      = constants.LogDir
	logFileName = constants.LogFileName
	maxLogSize  = constants.MaxLogSize
)

// setupLogging sends the standard logger to logs/vi-piano.log when debug is set
// Without debug all output is discarded, the terminal belongs to the UI
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		stamp := time.Now().Format("20060102-150405")
		rotated := filepath.Join(logDir, fmt.Sprintf("%s-%s.log", strings.TrimSuffix(logFileName, ".log"), stamp))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("vi-piano: logging started")
	return f
}
