package gateways

import (
	"net"
	"time"
)

// TCPProbe checks host reachability with a single TCP connect. Any
// failure (DNS, timeout, refusal) reports unreachable; retrying is the
// caller's call.
type TCPProbe struct{}

// NewTCPProbe creates a reachability probe
func NewTCPProbe() *TCPProbe {
	return &TCPProbe{}
}

// Reachable dials the host once within the timeout. A bare hostname
// probes port 443.
func (p *TCPProbe) Reachable(host string, timeout time.Duration) bool {
	addr := host
	if _, _, err := net.SplitHostPort(host); err != nil {
		addr = net.JoinHostPort(host, "443")
	}

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return false
	}
	//nolint:errcheck // Best effort close on probe connection
	conn.Close()
	return true
}
