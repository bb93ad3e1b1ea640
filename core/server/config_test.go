package server_test

import (
	"testing"

	"game-catalog/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_AuthEnabled(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		want   bool
	}{
		{"WithKey", "secret", true},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{ApiKey: tt.apiKey}
			assert.Equal(t, tt.want, c.AuthEnabled())
		})
	}
}

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, ":9000", server.Config{Port: "9000"}.Address())
	assert.Equal(t, ":8080", server.Config{}.Address())
}
