//go:build integration

package integration

import (
	"bufio"
	"encoding/json"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardSource = "const Card = () => <Wrapper className=\"flex p-2\">\n  <span className=\"m-1\">x</span>\n</Wrapper>\n"

// getProjectRoot returns the path to the tsce project root
func getProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	// tests/integration/serve_test.go -> project root
	return filepath.Join(filepath.Dir(filename), "..", "..")
}

// server is a running "tsce serve" process.
type server struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	scanner *bufio.Scanner
}

func startServer(t *testing.T) *server {
	t.Helper()
	projectRoot := getProjectRoot()

	buildCmd := exec.Command("go", "build", "-o", "dist/tsce", "./cmd/tsce")
	buildCmd.Dir = projectRoot
	output, err := buildCmd.CombinedOutput()
	require.NoError(t, err, "build failed: %s", string(output))

	cmd := exec.Command(filepath.Join(projectRoot, "dist", "tsce"), "serve")
	cmd.Dir = t.TempDir()

	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())

	t.Cleanup(func() {
		stdin.Close()
		cmd.Process.Kill()
	})

	return &server{cmd: cmd, stdin: stdin, scanner: bufio.NewScanner(stdout)}
}

// roundTrip sends one request line and decodes the next response.
func (s *server) roundTrip(t *testing.T, request string) map[string]any {
	t.Helper()
	_, err := s.stdin.Write([]byte(request + "\n"))
	require.NoError(t, err)
	return s.next(t, 30*time.Second)
}

func (s *server) next(t *testing.T, timeout time.Duration) map[string]any {
	t.Helper()
	require.True(t, waitForLine(s.scanner, timeout), "should receive a response")

	var response map[string]any
	require.NoError(t, json.Unmarshal(s.scanner.Bytes(), &response))
	return response
}

func request(t *testing.T, typ string, payload any) string {
	t.Helper()
	data, err := json.Marshal(map[string]any{"type": typ, "payload": payload})
	require.NoError(t, err)
	return string(data)
}

func TestServeIntegration_ReadySignal(t *testing.T) {
	s := startServer(t)

	ready := s.next(t, 60*time.Second)
	assert.True(t, ready["success"].(bool))
	assert.Equal(t, "ready", ready["type"])

	data := ready["data"].(map[string]any)
	assert.Len(t, data["modes"], 6)
}

func TestServeIntegration_Collect(t *testing.T) {
	s := startServer(t)
	s.next(t, 60*time.Second)

	response := s.roundTrip(t, request(t, "collect", map[string]any{"text": cardSource}))
	assert.True(t, response["success"].(bool), "collect should succeed")
	assert.Equal(t, "collect", response["type"])

	components := response["data"].(map[string]any)["components"].([]any)
	require.Len(t, components, 1)
	assert.Equal(t, "Wrapper", components[0].(map[string]any)["name"])
}

func TestServeIntegration_Extract(t *testing.T) {
	s := startServer(t)
	s.next(t, 60*time.Second)

	response := s.roundTrip(t, request(t, "extract", map[string]any{
		"mode": "extractUnboundToClipboard",
		"text": cardSource,
	}))
	require.True(t, response["success"].(bool), "extract should succeed")

	data := response["data"].(map[string]any)
	assert.Equal(t, "import tw from \"tailwind-styled-components\"\nconst Wrapper = tw.div`flex p-2`", data["output"])
}

func TestServeIntegration_SyntaxError(t *testing.T) {
	s := startServer(t)
	s.next(t, 60*time.Second)

	response := s.roundTrip(t, request(t, "collect", map[string]any{"text": "<Abc></Xyz>"}))
	assert.False(t, response["success"].(bool))
	assert.Equal(t, "syntax", response["errorKind"])
}

func TestServeIntegration_CloseCommand(t *testing.T) {
	s := startServer(t)
	s.next(t, 60*time.Second)

	_, err := s.stdin.Write([]byte(`{"type":"close","payload":{}}` + "\n"))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- s.cmd.Wait()
	}()

	select {
	case err := <-done:
		assert.NoError(t, err, "process should exit cleanly")
	case <-time.After(10 * time.Second):
		t.Fatal("process did not exit in time after close command")
	}
}

// TestServeIntegration_MultipleRequests tests that requests are answered in order
func TestServeIntegration_MultipleRequests(t *testing.T) {
	s := startServer(t)
	s.next(t, 60*time.Second)

	for i := 0; i < 5; i++ {
		response := s.roundTrip(t, request(t, "context", map[string]any{"text": cardSource, "offset": i * 10}))
		assert.True(t, response["success"].(bool), "request %d should succeed", i)
		assert.Equal(t, "context", response["type"])
	}
}

func waitForLine(scanner *bufio.Scanner, timeout time.Duration) bool {
	done := make(chan bool, 1)
	go func() {
		done <- scanner.Scan()
	}()

	select {
	case result := <-done:
		return result
	case <-time.After(timeout):
		return false
	}
}
