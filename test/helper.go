//go:build e2e

package test

import (
	"net"
	"strconv"
)

// randomPort asks the kernel for a free TCP port and hands it back as a
// string ready for APP_PORT.
func randomPort() (string, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer l.Close()

	port := l.Addr().(*net.TCPAddr).Port
	return strconv.Itoa(port), nil
}
