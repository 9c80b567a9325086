package server_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hyperitsme/vanta/config"
	"github.com/hyperitsme/vanta/llm"
	"github.com/hyperitsme/vanta/server"
)

type stubCompleter struct{}

func (stubCompleter) Complete(_ context.Context, _ llm.CompletionRequest) (string, error) {
	return "stub answer", nil
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestStart_FullWiring(t *testing.T) {
	port := freePort(t)
	cfg := config.NewInternalConfig()
	cfg.ServerAddress = fmt.Sprintf("127.0.0.1:%d", port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan, err := server.Start(ctx, zap.NewNop(), cfg, server.WithCompleter(stubCompleter{}))
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)

	// Wait for the listener to come up
	require.Eventually(t, func() bool {
		resp, err := http.Get(baseURL + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Post(baseURL+"/api/agent/generic", "application/json",
		strings.NewReader(`{"prompt":"wired?"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var task map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&task))
	assert.Equal(t, "done", task["status"])
	result, ok := task["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "stub answer", result["answer"])

	// Cancelling the context shuts the server down gracefully
	cancel()
	select {
	case <-errChan:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancellation")
	}
}

func TestStart_MissingParameters(t *testing.T) {
	t.Run("NilLogger", func(t *testing.T) {
		_, err := server.Start(context.Background(), nil, config.NewInternalConfig())
		assert.Error(t, err)
	})
	t.Run("NilConfig", func(t *testing.T) {
		_, err := server.Start(context.Background(), zap.NewNop(), nil)
		assert.Error(t, err)
	})
}
