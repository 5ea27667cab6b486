package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/404":
			http.NotFound(w, r)
		case "/files/notes.txt":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			fmt.Fprint(w, "mock data\n")
		default:
			fmt.Fprint(w, "index")
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_PrintMode(t *testing.T) {
	ts := newServer(t)

	code, stdout, _ := runCLI(t, ts.URL+"/files/notes.txt")

	assert.Equal(t, 0, code)
	assert.Equal(t, "mock data\n", stdout)
}

func TestRun_URLFlag(t *testing.T) {
	ts := newServer(t)

	code, stdout, _ := runCLI(t, "--url", ts.URL+"/files/notes.txt")

	assert.Equal(t, 0, code)
	assert.Equal(t, "mock data\n", stdout)
}

func TestRun_DownloadMode(t *testing.T) {
	ts := newServer(t)
	dir := t.TempDir()
	chdir(t, dir)

	tests := []struct {
		name         string
		args         []string
		expectedFile string
	}{
		{name: "name from url", args: []string{"-d", ts.URL + "/files/notes.txt"}, expectedFile: "notes.txt"},
		{name: "fallback name", args: []string{"--download", ts.URL + "/"}, expectedFile: "Download"},
		{name: "streamed", args: []string{"-d", "--stream", ts.URL + "/files/notes.txt"}, expectedFile: "notes.txt"},
		{name: "explicit output", args: []string{"-d", "-O", "custom.out", ts.URL + "/files/notes.txt"}, expectedFile: "custom.out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := runCLI(t, tt.args...)

			assert.Equal(t, 0, code)
			assert.Contains(t, stdout, "Downloaded ")
			assert.Contains(t, stdout, tt.expectedFile)
			_, err := os.Stat(filepath.Join(dir, tt.expectedFile))
			assert.NoError(t, err)
		})
	}

	got, err := os.ReadFile(filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "mock data\n", string(got))
}

func TestRun_Failures(t *testing.T) {
	ts := newServer(t)
	closed := httptest.NewServer(http.NotFoundHandler())
	unreachable := closed.URL + "/file"
	closed.Close()

	tests := []struct {
		name         string
		args         []string
		expectedCode int
		failureLine  bool
	}{
		{name: "not found", args: []string{ts.URL + "/404"}, expectedCode: 8, failureLine: true},
		{name: "not found in download mode", args: []string{"-d", ts.URL + "/404"}, expectedCode: 8, failureLine: true},
		{name: "unreachable host", args: []string{unreachable}, expectedCode: 4, failureLine: true},
		{name: "malformed url", args: []string{"not a url"}, expectedCode: 2, failureLine: true},
		{name: "unsupported scheme", args: []string{"ftp://example.com/file"}, expectedCode: 2, failureLine: true},
		{name: "missing url", args: []string{}, expectedCode: 2},
		{name: "too many args", args: []string{ts.URL, ts.URL}, expectedCode: 2},
		{name: "url twice", args: []string{"--url", ts.URL, ts.URL}, expectedCode: 2},
		{name: "output without download", args: []string{"-O", "x", ts.URL}, expectedCode: 2},
		{name: "stream without download", args: []string{"--stream", ts.URL}, expectedCode: 2},
		{name: "negative timeout", args: []string{"--timeout", "-1s", ts.URL}, expectedCode: 2},
		{name: "unknown flag", args: []string{"--bogus", ts.URL}, expectedCode: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())

			code, stdout, stderr := runCLI(t, tt.args...)

			assert.Equal(t, tt.expectedCode, code)
			if tt.failureLine {
				assert.Contains(t, stdout, "Download failed: ")
			} else {
				assert.Empty(t, stdout)
				assert.Contains(t, stderr, "Error: ")
			}

			entries, err := os.ReadDir(".")
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "--version")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, version)
}

func TestMain_ExitCode(t *testing.T) {
	var exitCode int
	osExit = func(code int) {
		exitCode = code
	}
	defer func() { osExit = os.Exit }()
	defer func() { osArgs = os.Args }()

	ts := newServer(t)

	t.Run("success", func(t *testing.T) {
		osArgs = []string{"wget", ts.URL + "/files/notes.txt"}
		exitCode = -1
		main()
		assert.Equal(t, 0, exitCode)
	})

	t.Run("not found", func(t *testing.T) {
		osArgs = []string{"wget", ts.URL + "/404"}
		exitCode = -1
		main()
		assert.Equal(t, 8, exitCode)
	})
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
