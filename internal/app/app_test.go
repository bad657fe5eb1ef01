package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *AppConfig {
	return &AppConfig{
		Host:                 "127.0.0.1",
		Port:                 8080,
		LogLevel:             "info",
		MembersLimit:         0,
		ChatMessageMaxLength: 1000,
		NameMaxLength:        32,
		RoomCodeStore:        RoomCodeStoreMemory,
		RoomCodeTTL:          24 * time.Hour,
		RedisHost:            "localhost",
		RedisPort:            6379,
		WSSendBuffer:         256,
		WSReadLimit:          65536,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *AppConfig)
		wantErr bool
	}{
		{name: "valid", modify: func(cfg *AppConfig) {}},
		{name: "negative members limit", modify: func(cfg *AppConfig) { cfg.MembersLimit = -1 }, wantErr: true},
		{name: "bad port", modify: func(cfg *AppConfig) { cfg.Port = 0 }, wantErr: true},
		{name: "unknown store", modify: func(cfg *AppConfig) { cfg.RoomCodeStore = "etcd" }, wantErr: true},
		{name: "zero ttl", modify: func(cfg *AppConfig) { cfg.RoomCodeTTL = 0 }, wantErr: true},
		{name: "zero send buffer", modify: func(cfg *AppConfig) { cfg.WSSendBuffer = 0 }, wantErr: true},
		{name: "bad log level", modify: func(cfg *AppConfig) { cfg.LogLevel = "LOUD" }, wantErr: true},
		{name: "redis store", modify: func(cfg *AppConfig) { cfg.RoomCodeStore = RoomCodeStoreRedis }},
		{name: "unlimited lengths", modify: func(cfg *AppConfig) { cfg.ChatMessageMaxLength, cfg.NameMaxLength = 0, 0 }},
		{name: "negative chat length", modify: func(cfg *AppConfig) { cfg.ChatMessageMaxLength = -1 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func createRoomCode(t *testing.T, handler http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/rooms", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		RoomId string `json:"roomId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.RoomId
}

func TestNewHandlerMemoryStore(t *testing.T) {
	handler, closeFn, err := newHandler(validConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer closeFn()

	code := createRoomCode(t, handler)
	assert.Len(t, code, 6)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestNewHandlerRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := validConfig()
	cfg.RoomCodeStore = RoomCodeStoreRedis
	cfg.RedisHost = mr.Host()
	cfg.RedisPort = mustPort(t, mr.Port())

	handler, closeFn, err := newHandler(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer closeFn()

	code := createRoomCode(t, handler)
	assert.True(t, mr.Exists("room-code:"+code))
	ttl := mr.TTL("room-code:" + code)
	assert.Equal(t, 24*time.Hour, ttl)
}

func TestNewHandlerRedisUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	cfg := validConfig()
	cfg.RoomCodeStore = RoomCodeStoreRedis
	cfg.RedisHost = mr.Host()
	cfg.RedisPort = mustPort(t, mr.Port())
	mr.Close()

	_, _, err = newHandler(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "debug")
	logger.Debug("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "DEBUG", record["level"])
}

func mustPort(t *testing.T, port string) int {
	t.Helper()
	p, err := strconv.Atoi(port)
	require.NoError(t, err)
	return p
}
