package server

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDriver = config.DriverSQLite
	cfg.DatabaseDSN = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	cfg.SecretKey = "k"
	cfg.BcryptCost = 4
	cfg.EndpointAddrHTTP = freeAddr(t)
	cfg.EndpointAddrGRPC = freeAddr(t)
	return cfg
}

func TestNewApp_BadDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseDriver = "oracle"

	_, err := NewApp(context.Background(), cfg, &bytes.Buffer{})
	assert.ErrorContains(t, err, "db init error")
}

func TestApp_RunServesHealthAndStops(t *testing.T) {
	cfg := testConfig(t)
	var logs bytes.Buffer

	app, err := NewApp(context.Background(), cfg, &logs)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + cfg.EndpointAddrHTTP + "/healthz")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 50*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}
