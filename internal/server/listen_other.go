//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package server

import (
	"context"
	"errors"
	"net"
)

const ReusePortSupported = false

var ErrReusePortUnsupported = errors.New("SO_REUSEPORT is not supported on this platform")

func Listen(ctx context.Context, addr string, reusePort bool) (net.Listener, error) {
	if reusePort {
		return nil, ErrReusePortUnsupported
	}
	var lc net.ListenConfig
	return lc.Listen(ctx, "tcp", addr)
}
