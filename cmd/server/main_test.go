package main

import (
	"context"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdg-garage/safari-trip-api/internal/catalog"
	"github.com/gdg-garage/safari-trip-api/internal/config"
	"github.com/gdg-garage/safari-trip-api/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestServe_ListenFailureIsReturned(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := &http.Server{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}
	err = serve(context.Background(), srv, logging.Discard(), time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error")
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: freeAddr(t), Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, logging.Discard(), time.Second) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServe_ShutdownTimeoutIsReturned(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	addr := freeAddr(t)
	srv := &http.Server{Addr: addr, Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, logging.Discard(), 50*time.Millisecond) }()

	go func() {
		for {
			resp, err := http.Get("http://" + addr + "/slow")
			if err == nil {
				resp.Body.Close()
				return
			}
			select {
			case <-started:
				return
			case <-time.After(10 * time.Millisecond):
			}
		}
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached the handler")
	}
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the shutdown timeout")
	}
}

func TestRun_ConfigErrorIsReturned(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestRun_StoreErrorIsReturned(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("STORE_DRIVER", config.StoreSQLite)
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "missing", "trips.db"))

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open sqlite catalog store")
}

func TestOpenStore(t *testing.T) {
	store, err := openStore(&config.Config{StoreDriver: config.StoreJSON, CatalogFile: filepath.Join(t.TempDir(), "trips.json")})
	require.NoError(t, err)
	assert.IsType(t, &catalog.FileStore{}, store)

	store, err = openStore(&config.Config{StoreDriver: config.StoreSQLite, DatabasePath: filepath.Join(t.TempDir(), "trips.db")})
	require.NoError(t, err)
	assert.IsType(t, &catalog.GormStore{}, store)
}
