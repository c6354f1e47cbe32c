package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/notes-app/backend/internal/common/bootstrap"
	"github.com/AlibekovAA/notes-app/backend/internal/common/clock"
	"github.com/AlibekovAA/notes-app/backend/internal/common/config"
	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
)

func startServer(t *testing.T) string {
	t.Helper()

	app := &bootstrap.App{
		Log: logger.NewNop(),
		Config: config.NotesConfig{
			Env:            config.EnvTest,
			StoreBackend:   config.BackendMemory,
			JWTSecret:      "0123456789abcdef0123456789abcdef",
			TokenTTL:       time.Hour,
			RequestTimeout: 5 * time.Second,
		},
		Clock:  clock.NewRealClock(),
		Stores: bootstrap.NewMemoryStores(),
	}
	handler, stop := bootstrap.NewRouter(app)
	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		stop()
	})
	return srv.URL
}

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_SignupLoginAddList(t *testing.T) {
	server := startServer(t)
	t.Setenv("NOTES_TOKEN", "")

	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("Tlqkf5678#"), nil }
	t.Cleanup(func() { readPassword = orig })

	out, _, err := runCmd(t, "-server", server, "signup", "-username", "ghong1987", "-name", "Gil Hong")
	require.NoError(t, err)
	assert.Contains(t, out, "created user ghong1987")

	out, errOut, err := runCmd(t, "-server", server, "login", "-username", "ghong1987")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Gil Hong logged-in")
	require.True(t, strings.HasPrefix(out, "export NOTES_TOKEN="))
	token := strings.TrimSpace(strings.TrimPrefix(out, "export NOTES_TOKEN="))

	out, _, err = runCmd(t, "-server", server, "add", "-token", token, "hi", "there")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "created note "))
	id := strings.TrimSpace(strings.TrimPrefix(out, "created note "))

	out, _, err = runCmd(t, "-server", server, "toggle", "-token", token, id)
	require.NoError(t, err)
	assert.Contains(t, out, "important=true")

	out, _, err = runCmd(t, "-server", server, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "hi there")
	assert.Contains(t, out, "ghong1987")

	out, _, err = runCmd(t, "-server", server, "users")
	require.NoError(t, err)
	assert.Contains(t, out, "Gil Hong")

	out, _, err = runCmd(t, "-server", server, "delete", "-token", token, id)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted note "+id)
}

func TestRun_AddWithoutToken(t *testing.T) {
	server := startServer(t)
	t.Setenv("NOTES_TOKEN", "")

	_, _, err := runCmd(t, "-server", server, "add", "some content")
	assert.Error(t, err)
}

func TestRun_Usage(t *testing.T) {
	_, errOut, err := runCmd(t)
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, errOut, "usage: notesctl")

	_, errOut, err = runCmd(t, "frobnicate")
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, errOut, `unknown command "frobnicate"`)
}
