package server

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xhttp "github.com/elysenoe925-creator/NTS-PROJECT/pkg/http"
)

type closer struct{ closed bool }

func (c *closer) Close() error {
	c.closed = true
	return errors.New("already closed")
}

type pruner struct{ calls chan time.Duration }

func (p pruner) Prune(idle time.Duration) int {
	select {
	case p.calls <- idle:
	default:
	}
	return 1
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestAppRunStopsOnContext(t *testing.T) {
	srv := xhttp.NewServer(nil, xhttp.WithHost("127.0.0.1"), xhttp.WithPort(freePort(t)))
	c := &closer{}
	p := pruner{calls: make(chan time.Duration, 1)}

	app := New(nil, Components{HTTP: srv, Limiter: p, Closers: map[string]io.Closer{"c": c}}, time.Second)
	app.pruneEvery = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case idle := <-p.calls:
		assert.Equal(t, 10*time.Minute, idle)
	case <-time.After(2 * time.Second):
		t.Fatal("limiter never pruned")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.True(t, c.closed)
}

func TestAppRunClosesClientsWhenHTTPFails(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	srv := xhttp.NewServer(nil, xhttp.WithHost("127.0.0.1"), xhttp.WithPort(port))
	c := &closer{}
	app := New(nil, Components{HTTP: srv, Closers: map[string]io.Closer{"c": c}}, time.Second)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listen")
	case <-time.After(3 * time.Second):
		t.Fatal("app kept running after bind failure")
	}
	assert.True(t, c.closed)
}
