// SPDX-License-Identifier: GPL-3.0-or-later

package mcwire

import (
	"net"
	"strconv"
)

// Target identifies the server to ping.
//
// The handshake side (Host, Port) is what the handshake packet
// advertises to the server; the connect side (ConnectHost, ConnectPort)
// is where the TCP connection actually goes. The two start out equal
// and diverge when an SRV record redirects the connection: servers
// behind SRV records expect the handshake to still name the hostname
// the player typed, not the SRV target.
type Target struct {
	// Host is the hostname advertised inside the handshake packet.
	Host string

	// Port is the port advertised inside the handshake packet.
	Port uint16

	// ConnectHost is the host to dial.
	ConnectHost string

	// ConnectPort is the port to dial.
	ConnectPort uint16
}

// DefaultServerPort is the port Minecraft servers listen on unless
// configured otherwise.
const DefaultServerPort = 25565

// NewTarget returns a [Target] whose connect side equals its
// handshake side. Use port 0 to get [DefaultServerPort].
func NewTarget(host string, port uint16) Target {
	if port == 0 {
		port = DefaultServerPort
	}
	return Target{
		Host:        host,
		Port:        port,
		ConnectHost: host,
		ConnectPort: port,
	}
}

// ConnectAddr returns the connect side formatted as host:port.
func (t Target) ConnectAddr() string {
	return net.JoinHostPort(t.ConnectHost, strconv.Itoa(int(t.ConnectPort)))
}

// NewTargetFunc returns a [Func] that always returns the given [Target].
//
// This is a convenience wrapper around [ConstFunc] for the common case of
// injecting a ping target into a pipeline.
func NewTargetFunc(target Target) Func[Unit, Target] {
	return ConstFunc(target)
}
