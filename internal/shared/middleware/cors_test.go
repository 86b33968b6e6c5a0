package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCORSConfig_ClientOrigin(t *testing.T) {
	cfg := DefaultCORSConfig("http://localhost:4200/")

	assert.Equal(t, []string{"http://localhost:4200"}, cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)
}

func TestDefaultCORSConfig_EmptyOriginAllowsAny(t *testing.T) {
	cfg := DefaultCORSConfig("")

	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.False(t, cfg.AllowCredentials)
}
