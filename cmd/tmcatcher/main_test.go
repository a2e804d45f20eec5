package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"

	"github.com/muurk/tmcatcher/internal/api"
	"github.com/muurk/tmcatcher/internal/config"
	"github.com/muurk/tmcatcher/internal/wizard"
)

func TestMask(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"abc":        "***",
		"abcd":       "****",
		"abcdef1234": "******1234",
	}
	for in, want := range tests {
		if got := mask(in); got != want {
			t.Errorf("mask(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReport(t *testing.T) {
	if err := report(nil, api.Response{Success: true}); err != nil {
		t.Errorf("report(success) = %v", err)
	}
	if err := report(nil, api.Response{Success: false}); !errors.Is(err, errReported) {
		t.Errorf("report(failure) = %v, want errReported", err)
	}
	encodeErr := errors.New("encode")
	if err := report(encodeErr, api.Response{Success: true}); err != encodeErr {
		t.Errorf("report should pass print errors through, got %v", err)
	}
}

func TestRunRegister(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	cfg = config.Default()
	client = api.NewClientWithURL(srv.URL)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	in := strings.NewReader("0812345678\nkey-1\n0898765432\n12345\n")
	var out bytes.Buffer
	if err := runRegister(cmd, in, &out); err != nil {
		t.Fatalf("runRegister() error = %v\noutput:\n%s", err, out.String())
	}

	mu.Lock()
	defer mu.Unlock()
	if len(paths) != 3 {
		t.Errorf("got %d requests (%v), want 3", len(paths), paths)
	}
	if cfg.RegistrantPhone() != "0812345678" {
		t.Errorf("registrant phone = %q", cfg.RegistrantPhone())
	}
	if !strings.Contains(out.String(), wizard.NoticeLoginComplete) {
		t.Errorf("output missing completion notice:\n%s", out.String())
	}
}

func TestRunRegister_InvalidPhoneThenEOF(t *testing.T) {
	cfg = config.Default()
	client = api.NewClientWithURL("http://127.0.0.1:1")

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	var out bytes.Buffer
	err := runRegister(cmd, strings.NewReader("12345\n"), &out)
	if err == nil {
		t.Fatal("expected an error when input ends")
	}
	if !strings.Contains(out.String(), wizard.MsgInvalidPhone) {
		t.Errorf("output missing validation message:\n%s", out.String())
	}
}

func TestRunRegister_JumpBack(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(body))
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	cfg = config.Default()
	client = api.NewClientWithURL(srv.URL)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	// back to step 1 from the bot phone step, then register another phone
	in := strings.NewReader("0812345678\nkey-1\nb 1\n0912345678\nkey-2\n0898765432\n12345\n")
	var out bytes.Buffer
	if err := runRegister(cmd, in, &out); err != nil {
		t.Fatalf("runRegister() error = %v\noutput:\n%s", err, out.String())
	}

	mu.Lock()
	defer mu.Unlock()
	if len(bodies) != 4 {
		t.Fatalf("got %d requests, want 4", len(bodies))
	}
	if !strings.Contains(bodies[1], "0912345678") || !strings.Contains(bodies[1], "key-2") {
		t.Errorf("second submit = %s, want the re-entered phone and key", bodies[1])
	}
}

func TestParseStep(t *testing.T) {
	if step, ok := parseStep("2"); !ok || step != wizard.StepAPIKey {
		t.Errorf("parseStep(2) = %v, %v", step, ok)
	}
	for _, s := range []string{"0", "5", "x"} {
		if _, ok := parseStep(s); ok {
			t.Errorf("parseStep(%q) should fail", s)
		}
	}
}

func TestSetup_RunsFromSubcommand(t *testing.T) {
	if rootCmd.PersistentPreRunE == nil {
		t.Fatal("rootCmd has no PersistentPreRunE")
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(config.EnvConfigPath, path)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	rootCmd.SetArgs([]string{"--base-url", "http://flag.invalid", "config", "path"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if cfg == nil || cfg.API.BaseURL != "http://flag.invalid" {
		t.Fatalf("cfg = %+v, want the --base-url override applied", cfg)
	}
	if client == nil || client.BaseURL != "http://flag.invalid" {
		t.Errorf("client not built from the overridden config")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("config file written by a read-only command: %v", err)
	}
}
