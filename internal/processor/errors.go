package processor

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
)

// ErrTransient marks an error as worth retrying after a backoff.
var ErrTransient = errors.New("transient error")

// IsTransient reports whether err is a network-level or otherwise
// temporary failure. Errors may opt in by wrapping ErrTransient or by
// implementing Transient() bool.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTransient) {
		return true
	}

	var marked interface{ Transient() bool }
	if errors.As(err, &marked) && marked.Transient() {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
