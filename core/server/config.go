package server

import "net"

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface the server binds to.
	Host string `mapstructure:"host" default:"0.0.0.0"`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"3000"`
}

// Addr returns the host:port address the server should listen on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}
