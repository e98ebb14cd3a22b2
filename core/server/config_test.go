package server_test

import (
	"testing"

	"github.com/Zurki/immich-avif-generator/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Addr(t *testing.T) {
	tests := []struct {
		name string
		host string
		port string
		want string
	}{
		{"Default", "0.0.0.0", "3000", "0.0.0.0:3000"},
		{"Localhost", "127.0.0.1", "8080", "127.0.0.1:8080"},
		{"IPv6", "::1", "3000", "[::1]:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Host: tt.host, Port: tt.port}
			assert.Equal(t, tt.want, c.Addr())
		})
	}
}
