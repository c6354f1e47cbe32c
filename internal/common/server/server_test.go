package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestDefaultServerConfig(t *testing.T) {
	cfg := DefaultServerConfig("3001")
	assert.Equal(t, ":3001", cfg.Addr)

	srv := NewServer(cfg, http.NotFoundHandler(), logger.NewNop())
	assert.Equal(t, cfg.ReadTimeout, srv.ReadTimeout)
	assert.Equal(t, cfg.IdleTimeout, srv.IdleTimeout)
	assert.NotNil(t, srv.ErrorLog)
}

func TestServerConfig_WithRequestTimeout(t *testing.T) {
	cfg := DefaultServerConfig("3001")

	assert.Equal(t, cfg.WriteTimeout, cfg.WithRequestTimeout(5*time.Second).WriteTimeout)
	assert.Equal(t, 2*time.Minute+time.Second, cfg.WithRequestTimeout(2*time.Minute).WriteTimeout)
}

func TestRun_ShutsDownAndRunsHooks(t *testing.T) {
	addr := freeAddr(t)
	srv := NewServer(ServerConfig{Addr: addr}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), nil)

	ctx, cancel := context.WithCancel(context.Background())
	hookRan := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, srv, logger.NewNop(), "notes", []ShutdownHook{
			func(context.Context) error {
				close(hookRan)
				return nil
			},
		})
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusTeapot
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	<-hookRan
}

func TestRun_ListenFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	srv := NewServer(ServerConfig{Addr: l.Addr().String()}, http.NotFoundHandler(), nil)
	err = Run(context.Background(), srv, logger.NewNop(), "notes", nil)
	assert.Error(t, err)
}
