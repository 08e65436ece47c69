package common

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunServerStopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	hookRan := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- RunServerWithShutdownContext(ctx, server, "test", zap.NewNop(), time.Second, time.Second, func(context.Context) error {
			close(hookRan)
			return nil
		})
	}()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context was cancelled")
	}
	select {
	case <-hookRan:
	default:
		t.Error("Expected shutdown hook to run")
	}
}

func TestRunServerReturnsListenError(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	server := &http.Server{Addr: taken.Addr().String(), Handler: http.NotFoundHandler()}
	err = RunServerWithShutdownContext(context.Background(), server, "test", nil, time.Second, time.Second)
	assert.Error(t, err)
}
