package network

import "errors"

var (
	// ErrUnknownNetwork indicates a network name or byte that is not recognised.
	ErrUnknownNetwork = errors.New("network: unknown network")

	// ErrNoEndpoint indicates no RPC endpoint is configured for the network.
	ErrNoEndpoint = errors.New("network: no RPC endpoint configured")

	// ErrConnectionFailed indicates the request never produced a usable HTTP response.
	ErrConnectionFailed = errors.New("network: connection failed")

	// ErrInvalidResponse indicates the node answered with something other than a
	// well-formed JSON-RPC reply.
	ErrInvalidResponse = errors.New("network: invalid response")

	// ErrRemote indicates the node returned a JSON-RPC error object.
	ErrRemote = errors.New("network: remote error")

	// ErrInvalidRange indicates a block range whose start is past its end.
	ErrInvalidRange = errors.New("network: invalid block range")

	// ErrMalformedSource indicates an output file line that is not a hex-encoded output.
	ErrMalformedSource = errors.New("network: malformed output source")
)
