package network

import (
	"fmt"
	"strings"
)

// Network identifies a chain. Its byte is mixed into every consensus hash so
// outputs from one network never hash alike on another.
type Network byte

const (
	MainNet   Network = 0x00
	StageNet  Network = 0x01
	NextNet   Network = 0x02
	LocalNet  Network = 0x10
	Igor      Network = 0x24
	Esmeralda Network = 0x26
)

var networkNames = map[Network]string{
	MainNet:   "mainnet",
	StageNet:  "stagenet",
	NextNet:   "nextnet",
	LocalNet:  "localnet",
	Igor:      "igor",
	Esmeralda: "esmeralda",
}

// Networks returns all known networks in byte order.
func Networks() []Network {
	return []Network{MainNet, StageNet, NextNet, LocalNet, Igor, Esmeralda}
}

// Byte returns the network byte.
func (n Network) Byte() byte {
	return byte(n)
}

// String returns the lower-case network name.
func (n Network) String() string {
	if name, ok := networkNames[n]; ok {
		return name
	}
	return fmt.Sprintf("network(0x%02x)", byte(n))
}

// Valid reports whether n is a known network.
func (n Network) Valid() bool {
	_, ok := networkNames[n]
	return ok
}

// ParseNetwork parses a network name, case-insensitively.
func ParseNetwork(name string) (Network, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for n, s := range networkNames {
		if s == want {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
}

// NetworkFromByte returns the network with the given byte.
func NetworkFromByte(b byte) (Network, error) {
	n := Network(b)
	if !n.Valid() {
		return 0, fmt.Errorf("%w: 0x%02x", ErrUnknownNetwork, b)
	}
	return n, nil
}
