package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain lets the test binary act as the otpsecret binary for the end-to-end test.
func TestMain(m *testing.M) {
	if os.Getenv("OTPSECRET_RUN_MAIN") == "1" {
		os.Args = append([]string{"otpsecret"}, strings.Fields(os.Getenv("OTPSECRET_MAIN_ARGS"))...)
		main()
		os.Exit(0)
	}
	os.Exit(m.Run())
}

// binaryEnv blanks every variable the CLI reads so the caller's shell cannot leak in.
// Later entries win, so extra overrides the blanks.
func binaryEnv(t *testing.T, extra ...string) []string {
	t.Helper()
	env := append(os.Environ(),
		"OTPSECRET_RUN_MAIN=1",
		"OTPSECRET_MAIN_ARGS=",
		"OTPSECRET_CONFIG_PATH="+filepath.Join(t.TempDir(), "otpsecret.toml"),
		"OTPSECRET_LOG_LEVEL=",
		"OTPSECRET_FORMAT=",
		"OTPSECRET_PLATFORM=",
		"OTPSECRET_APP=",
		"OTPSECRET_VARIABLE=",
		"OTPSECRET_AUDIT_ENABLED=",
		"OTPSECRET_ENV_FILE=",
		"OTP_SECRET=",
	)
	return append(env, extra...)
}

func TestBinary(t *testing.T) {
	cmd := exec.Command(os.Args[0])
	cmd.Env = binaryEnv(t)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "stderr: %s", stderr.String())
	assert.Equal(t, 0, cmd.ProcessState.ExitCode())

	lines := regexp.MustCompile(`(?m)^OTP_SECRET=[a-f0-9]{64}$`).FindAllString(stdout.String(), -1)
	assert.Len(t, lines, 1)
}

func TestBinary_InvalidCheck(t *testing.T) {
	cmd := exec.Command(os.Args[0])
	cmd.Env = binaryEnv(t, "OTPSECRET_MAIN_ARGS=check", "OTP_SECRET=too-short")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, stderr.String(), "invalid secret")
}
