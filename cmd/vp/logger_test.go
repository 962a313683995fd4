package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestNewLoggerDefaultInfo(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := newLogger(false, "info", false, false, buf)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	logger.Debug("scan detail")
	logger.Info("rewrite summary")

	out := buf.String()
	if strings.Contains(out, "scan detail") {
		t.Fatalf("expected debug to be filtered at info level, got %q", out)
	}
	if !strings.Contains(out, "rewrite summary") {
		t.Fatalf("expected info message, got %q", out)
	}
}

func TestNewLoggerRespectsEnvWhenFlagUnset(t *testing.T) {
	t.Setenv("LOG_LEVEL", "trace")
	buf := &bytes.Buffer{}

	logger, err := newLogger(false, "info", false, false, buf)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	logger.Debug("scan detail")

	if !strings.Contains(buf.String(), "scan detail") {
		t.Fatalf("expected debug output when LOG_LEVEL=trace, got %q", buf.String())
	}
}

func TestNewLoggerFlagOverridesEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "trace")
	buf := &bytes.Buffer{}

	logger, err := newLogger(false, "error", true, false, buf)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	logger.Info("rewrite summary")
	logger.Error("propagate failed")

	out := buf.String()
	if strings.Contains(out, "rewrite summary") {
		t.Fatalf("expected info to be filtered at error level, got %q", out)
	}
	if !strings.Contains(out, "propagate failed") {
		t.Fatalf("expected error message, got %q", out)
	}
}

func TestAddLoggingFlagDefaults(t *testing.T) {
	flags := pflag.NewFlagSet("vp", pflag.ContinueOnError)
	addLoggingFlags(flags)

	if lvl, err := flags.GetString("log-level"); err != nil || lvl != "info" {
		t.Fatalf("log-level default %q err %v", lvl, err)
	}
	if structured, err := flags.GetBool("structured"); err != nil || structured {
		t.Fatalf("structured default %v err %v", structured, err)
	}
	if caller, err := flags.GetBool("log-caller"); err != nil || caller {
		t.Fatalf("log-caller default %v err %v", caller, err)
	}

	// Subcommands and the root share the helper; re-registering must be a no-op.
	addLoggingFlags(flags)
	if flags.Lookup("log-level") == nil {
		t.Fatal("log-level flag lost after re-register")
	}
}
