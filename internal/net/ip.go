package net

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// LinkScheme prefixes every share link.
const LinkScheme = "annotator://"

var ErrBadLink = errors.New("not an annotator link")

// ShareLink builds the link a viewer opens to mirror this session.
func ShareLink(host string, port int) string {
	return LinkScheme + net.JoinHostPort(host, strconv.Itoa(port))
}

// ParseLink extracts host:port from a share link.
func ParseLink(link string) (string, error) {
	if !strings.HasPrefix(link, LinkScheme) {
		return "", fmt.Errorf("%w: %q", ErrBadLink, link)
	}
	addr := strings.TrimSuffix(strings.TrimPrefix(link, LinkScheme), "/")
	host, port, err := net.SplitHostPort(addr)
	if err != nil || host == "" {
		return "", fmt.Errorf("%w: %q", ErrBadLink, link)
	}
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		return "", fmt.Errorf("%w: bad port in %q", ErrBadLink, link)
	}
	return addr, nil
}

// OutgoingIP finds the address other machines on the LAN can reach us at.
// No packet is sent: dialing UDP only selects a route.
func OutgoingIP() net.IP {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// offline network, fall back to the interfaces
		return firstIPv4()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP
}

// firstIPv4 picks the first non-loopback IPv4 address on this machine.
func firstIPv4() net.IP {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		log.Warn("listing interface addresses", "err", err)
	}
	for _, a := range addrs {
		prefix, ok := a.(*net.IPNet)
		if !ok || prefix.IP.IsLoopback() {
			continue
		}
		if v4 := prefix.IP.To4(); v4 != nil {
			return v4
		}
	}
	log.Warn("no usable interface, share link falls back to loopback")
	return net.IPv4(127, 0, 0, 1)
}
