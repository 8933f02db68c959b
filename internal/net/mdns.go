package net

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_annotator._tcp"

// Session is a mirror found on the local network.
type Session struct {
	Name string
	Addr string
}

// Link returns the share link for s.
func (s Session) Link() string { return LinkScheme + s.Addr }

// Advertise publishes the mirror on port under name over mDNS. The caller
// shuts the returned server down when sharing stops.
func Advertise(name string, port int) (*mdns.Server, error) {
	if name == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("could not get hostname: %w", err)
		}
		name = host
	}

	service, err := mdns.NewMDNSService(
		name,
		serviceType,
		"",
		"",
		port,
		[]net.IP{OutgoingIP()},
		[]string{"LocalAnnotator"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	log.Info("[MDNS] advertising", "name", name, "service", serviceType, "port", port)
	return server, nil
}

// Browse queries the network for timeout and calls found for each mirror.
func Browse(timeout time.Duration, found func(Session)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		seen := make(map[string]bool)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			addr := net.JoinHostPort(e.AddrV4.String(), fmt.Sprint(e.Port))
			if seen[addr] {
				continue
			}
			seen[addr] = true
			found(Session{Name: instanceName(e.Name), Addr: addr})
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mdns query: %w", err)
	}
	return nil
}

// instanceName strips the service suffix from a full mDNS name.
func instanceName(full string) string {
	if i := strings.Index(full, "."+serviceType); i > 0 {
		return strings.ReplaceAll(full[:i], `\ `, " ")
	}
	return full
}
