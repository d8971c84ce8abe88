//go:build unix

package sender

import (
	"golang.org/x/sys/unix"
	"net"
	"syscall"
)

// peekHealthy checks conn's socket with a non-blocking MSG_PEEK. ok is false
// when conn does not expose its file descriptor.
func peekHealthy(conn net.Conn) (healthy bool, ok bool) {
	sc, isSyscallConn := conn.(syscall.Conn)
	if !isSyscallConn {
		return false, false
	}
	rc, err := sc.SyscallConn()
	if err != nil {
		return false, false
	}

	var b [1]byte
	err = rc.Read(func(fd uintptr) bool {
		for {
			n, _, err := unix.Recvfrom(int(fd), b[:], unix.MSG_PEEK|unix.MSG_DONTWAIT)
			switch {
			case err == unix.EINTR:
				continue
			case err == unix.EAGAIN || err == unix.EWOULDBLOCK:
				healthy = true
			case err != nil:
				healthy = false
			default:
				// zero bytes is an orderly shutdown by the peer
				healthy = n > 0
			}
			return true
		}
	})
	if err != nil {
		return false, true
	}
	return healthy, true
}
