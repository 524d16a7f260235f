//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package server

import (
	"context"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// ReusePortSupported reports whether several processes can bind the same port.
const ReusePortSupported = true

// Listen opens a TCP listener on addr. With reusePort set the socket gets
// SO_REUSEPORT so every worker can bind the same address and the kernel
// balances accepted connections between them.
func Listen(ctx context.Context, addr string, reusePort bool) (net.Listener, error) {
	lc := net.ListenConfig{}
	if reusePort {
		lc.Control = func(network, address string, c syscall.RawConn) error {
			var serr error
			err := c.Control(func(fd uintptr) {
				serr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
			})
			if err != nil {
				return err
			}
			return serr
		}
	}
	return lc.Listen(ctx, "tcp", addr)
}
