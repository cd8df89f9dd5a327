package network

import "fmt"

// Environment variables consulted by ResolveConfig.
const (
	EnvRPCURL  = "TARISCAN_RPC_URL"
	EnvRPCUser = "TARISCAN_RPC_USER"
	EnvRPCPass = "TARISCAN_RPC_PASS"
)

// RPCConfig locates a node that serves outputs over JSON-RPC.
type RPCConfig struct {
	URL      string `json:"url"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// DefaultEndpoints lists the endpoints assumed when none is configured. Only
// a local development node is assumed; public networks must be named
// explicitly.
var DefaultEndpoints = map[Network]string{
	LocalNet: "http://localhost:18142/json_rpc",
}

// overlay returns c with every non-empty field of o applied on top.
func (c RPCConfig) overlay(o RPCConfig) RPCConfig {
	if o.URL != "" {
		c.URL = o.URL
	}
	if o.User != "" {
		c.User = o.User
	}
	if o.Password != "" {
		c.Password = o.Password
	}
	return c
}

// ResolveConfig layers the default endpoint for n, the TARISCAN_RPC_*
// variables in env and flags, each overriding the one before.
func ResolveConfig(n Network, flags RPCConfig, env map[string]string) (RPCConfig, error) {
	cfg := RPCConfig{URL: DefaultEndpoints[n]}
	cfg = cfg.overlay(RPCConfig{URL: env[EnvRPCURL], User: env[EnvRPCUser], Password: env[EnvRPCPass]})
	cfg = cfg.overlay(flags)
	if cfg.URL == "" {
		return RPCConfig{}, fmt.Errorf("%w for %s (set -rpc-url or %s)", ErrNoEndpoint, n, EnvRPCURL)
	}
	return cfg, nil
}
