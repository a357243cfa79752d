package config

import (
	"fmt"
	"net"
	"os"
	"strings"
)

// API is the configuration for the HTTP API server.
type API struct {
	// Address is the bind address of the endpoint.
	// Format: [tcp|unix://][<host>]:<port>
	// e.g :
	// * unix:///var/run/gcolord.sock
	// * tcp://127.0.0.1:8084
	// * :8084 (equal to tcp://:8084)
	Address string `yaml:"address"`
	// TLS is the tls configuration.
	TLS *TLSOptions `yaml:"tls"`
	// Websocket is the configuration of the change feed.
	Websocket WebsocketOptions `yaml:"websocket"`
}

type TLSOptions struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

type WebsocketOptions struct {
	Enable bool   `yaml:"enable"`
	Path   string `yaml:"path"`
}

var DefaultAPI = API{
	Address: "tcp://127.0.0.1:8084",
	Websocket: WebsocketOptions{
		Enable: true,
		Path:   "/v1/watch",
	},
}

func splitAddress(address string) (network, addr string) {
	epParts := strings.SplitN(address, "://", 2)
	if len(epParts) == 1 {
		return "tcp", epParts[0]
	}
	return epParts[0], epParts[1]
}

func (a API) validateAddress(address string, fieldName string) error {
	if address == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	network, addr := splitAddress(address)
	switch network {
	case "tcp":
		_, _, err := net.SplitHostPort(addr)
		if err != nil {
			return fmt.Errorf("invalid %s: %s", fieldName, err.Error())
		}
	case "unix":
		if addr == "" {
			return fmt.Errorf("invalid %s: empty socket path", fieldName)
		}
	default:
		return fmt.Errorf("invalid %s schema: %s", fieldName, network)
	}
	return nil
}

func (a API) Validate() error {
	err := a.validateAddress(a.Address, "address")
	if err != nil {
		return err
	}
	if a.TLS != nil && (a.TLS.CertFile == "" || a.TLS.KeyFile == "") {
		return fmt.Errorf("invalid tls: cert_file and key_file are required")
	}
	if a.Websocket.Enable && !strings.HasPrefix(a.Websocket.Path, "/") {
		return fmt.Errorf("invalid websocket path: %q", a.Websocket.Path)
	}
	return nil
}

// GetListener returns the listener for the API endpoint.
func (a API) GetListener() (net.Listener, error) {
	network, addr := splitAddress(a.Address)
	if network == "unix" {
		// remove the stale socket file
		if err := os.Remove(addr); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}
	return net.Listen(network, addr)
}
