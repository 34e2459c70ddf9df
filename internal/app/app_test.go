package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/jot/internal/todoapi"
	"github.com/five82/jot/internal/todoapi/todoapitest"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunCommandAgainstService(t *testing.T) {
	server := todoapitest.NewServer(t, todoapi.Todo{Body: "Buy milk"})
	logFile := filepath.Join(t.TempDir(), "logs", "jot.log")
	cfgPath := writeConfig(t, "service_base_url = \"http://127.0.0.1:1\"\nlog_file = \""+logFile+"\"\n")

	var out, errOut bytes.Buffer
	code, err := Run(context.Background(), Options{
		ConfigPath: cfgPath,
		BaseURL:    server.URL,
		Args:       []string{"ls"},
		Stdout:     &out,
		Stderr:     &errOut,
	})

	require.NoError(t, err)
	require.Equal(t, 0, code, errOut.String())
	require.Contains(t, out.String(), "Buy milk")
	require.FileExists(t, logFile)
}

func TestRunCommandFailureExitCode(t *testing.T) {
	server := todoapitest.NewServer(t)
	cfgPath := writeConfig(t, "log_file = \""+filepath.Join(t.TempDir(), "jot.log")+"\"\n")

	var out, errOut bytes.Buffer
	code, err := Run(context.Background(), Options{
		ConfigPath: cfgPath,
		BaseURL:    server.URL,
		Args:       []string{"rm", "42"},
		Stdout:     &out,
		Stderr:     &errOut,
	})

	require.NoError(t, err)
	require.Equal(t, 1, code)
	require.Contains(t, errOut.String(), "no todo with id 42")
}

func TestRunRejectsBadConfig(t *testing.T) {
	cfgPath := writeConfig(t, "request_timeout = \"soon\"\n")

	code, err := Run(context.Background(), Options{ConfigPath: cfgPath, Args: []string{"ls"}})

	require.Error(t, err)
	require.Equal(t, 1, code)
	require.Contains(t, err.Error(), "load config")
}

func TestRunRejectsBadURL(t *testing.T) {
	cfgPath := writeConfig(t, "log_file = \""+filepath.Join(t.TempDir(), "jot.log")+"\"\n")

	code, err := Run(context.Background(), Options{
		ConfigPath: cfgPath,
		BaseURL:    "http://",
		Args:       []string{"ls"},
	})

	require.Error(t, err)
	require.Equal(t, 1, code)
	require.Contains(t, err.Error(), "init todo client")
}

func TestRunWithLoggingDisabled(t *testing.T) {
	server := todoapitest.NewServer(t)
	cfgPath := writeConfig(t, "log_file = \"-\"\n")

	var out, errOut bytes.Buffer
	code, err := Run(context.Background(), Options{
		ConfigPath: cfgPath,
		BaseURL:    server.URL,
		Args:       []string{"add", "Buy", "milk"},
		Stdout:     &out,
		Stderr:     &errOut,
	})

	require.NoError(t, err)
	require.Equal(t, 0, code, errOut.String())
	require.Len(t, server.Todos(), 1)
}
