//go:build unix

package main

import (
	"log"
	"syscall"

	"github.com/gdamore/tcell/v2"
)

// suspender returns the Ctrl+Z action: hand the terminal back, stop, resume
func suspender(screen tcell.Screen) func() {
	return func() {
		if err := screen.Suspend(); err != nil {
			log.Printf("app: suspend failed: %v", err)
			return
		}
		if err := syscall.Kill(syscall.Getpid(), syscall.SIGTSTP); err != nil {
			log.Printf("app: SIGTSTP failed: %v", err)
		}
		if err := screen.Resume(); err != nil {
			log.Printf("app: resume failed: %v", err)
		}
	}
}
