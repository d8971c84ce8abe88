//go:build !unix

package sender

import "net"

func peekHealthy(conn net.Conn) (healthy bool, ok bool) {
	return false, false
}
