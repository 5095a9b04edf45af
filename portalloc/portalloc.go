package portalloc

import (
	"net"

	"github.com/seekjob/desktophost/errors"
)

// Reserve binds an OS-assigned ephemeral port on the loopback interface,
// reads back the assigned number, releases the socket, and returns the port.
//
// The released port is not guaranteed to still be free by the time the
// backend binds it. The window is milliseconds and local ephemeral-port
// collisions are rare, so the race is accepted.
func Reserve() (int, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, errors.AllocationFailed(err)
	}
	defer listener.Close()

	addr, ok := listener.Addr().(*net.TCPAddr)
	if !ok {
		return 0, errors.AllocationFailed(nil).WithDetail("addr", listener.Addr().String())
	}
	return addr.Port, nil
}
