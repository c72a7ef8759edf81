//go:build !unix

package main

import "github.com/gdamore/tcell/v2"

// suspender is a no-op where job control does not exist, notes are still released
func suspender(tcell.Screen) func() {
	return nil
}
