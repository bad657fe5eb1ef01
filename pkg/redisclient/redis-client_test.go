package redisclient

import (
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)

	port, err := strconv.Atoi(s.Port())
	require.NoError(t, err)

	host := s.Host()
	rc, err := NewRedisClient(&Config{Host: host, Port: port})
	require.NoError(t, err)
	defer rc.Close()

	s.Close()

	_, err = NewRedisClient(&Config{Host: host, Port: port})
	assert.Error(t, err)
}
