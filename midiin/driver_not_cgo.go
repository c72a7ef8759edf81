//go:build !cgo

package midiin

import "gitlab.com/gomidi/midi/v2/drivers"

func newDriver() (drivers.Driver, error) {
	return nil, ErrNoDriver
}
