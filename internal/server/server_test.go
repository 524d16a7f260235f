package server

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestListen_ReusePortSharesAddress(t *testing.T) {
	if !ReusePortSupported {
		t.Skip("SO_REUSEPORT not available")
	}
	ctx := context.Background()
	first, err := Listen(ctx, "127.0.0.1:0", true)
	require.NoError(t, err)
	defer first.Close()

	second, err := Listen(ctx, first.Addr().String(), true)
	require.NoError(t, err)
	defer second.Close()

	assert.Equal(t, first.Addr().String(), second.Addr().String())
}

func TestListen_WithoutReusePortConflicts(t *testing.T) {
	ctx := context.Background()
	first, err := Listen(ctx, "127.0.0.1:0", false)
	require.NoError(t, err)
	defer first.Close()

	_, err = Listen(ctx, first.Addr().String(), false)
	assert.Error(t, err)
}

func TestServe_ShutsDownWhenContextEnds(t *testing.T) {
	ln, err := Listen(context.Background(), "127.0.0.1:0", false)
	require.NoError(t, err)

	srv := New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, srv, ln, time.Second, quietLogger()) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + ln.Addr().String())
		return err == nil
	}, time.Second, 10*time.Millisecond)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, err = http.Get("http://" + ln.Addr().String())
	assert.Error(t, err)
}
