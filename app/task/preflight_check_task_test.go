// Copyright (c) tkc17.

package task

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPreflightCheckProcess(t *testing.T) {
	sysClassNet := t.TempDir()
	err := os.MkdirAll(filepath.Join(sysClassNet, "wlan0", "wireless"), 0755)
	if err != nil {
		t.Fatal(err)
	}
	handler := NewPreflightCheckHandler("wlan0", "/bin/sh")
	handler.sysClassNet = sysClassNet
	checks, err := handler.Process(context.Background())
	if err != nil {
		t.Fatalf("Error in running preflight checks - %s", err.Error())
	}
	if len(checks) != 3 {
		t.Fatalf("Expected 3 checks, found %d", len(checks))
	}
	for _, check := range checks {
		if !check.Ok {
			t.Fatalf("Expected check %s to pass: %s", check.Name, check.Value)
		}
	}
}

func TestPreflightCheckMissingIface(t *testing.T) {
	handler := NewPreflightCheckHandler("wlan0", "/bin/sh")
	handler.sysClassNet = t.TempDir()
	checks, err := handler.Process(context.Background())
	if err != nil {
		t.Fatalf("Interface checks must not be fatal - %s", err.Error())
	}
	for _, check := range checks {
		if check.Name == "iface_present" && check.Ok {
			t.Fatalf("Expected iface_present to fail")
		}
		if check.Name == "iface_wireless" && check.Ok {
			t.Fatalf("Expected iface_wireless to fail")
		}
	}
}

func TestPreflightCheckMissingBinary(t *testing.T) {
	handler := NewPreflightCheckHandler("wlan0", "no-such-iw-binary")
	handler.sysClassNet = t.TempDir()
	_, err := handler.Process(context.Background())
	if err == nil {
		t.Fatalf("Expected error for missing binary")
	}
	if !strings.Contains(err.Error(), "iw_binary") {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
}
