// Copyright (c) tkc17.

package module

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveTemplate(t *testing.T) {
	values := map[string]any{
		"iface": "wlan0",
	}
	output, err := ResolveTemplate(context.TODO(), values, "monitoring {{ iface }}")
	if err != nil {
		t.Fatalf("Failed to resolve template - %s", err.Error())
	}
	if output != "monitoring wlan0" {
		t.Fatalf("Expected: monitoring wlan0, got: %s", output)
	}
}

func TestServiceUnit(t *testing.T) {
	values := map[string]any{
		"binary_path": "/usr/local/bin/iwmon",
		"iface":       "wlan0",
	}
	output, err := ServiceUnit(context.TODO(), values)
	if err != nil {
		t.Fatalf("Failed to render service unit - %s", err.Error())
	}
	t.Logf("Output: %s", output)
	if !strings.Contains(output, "ExecStart=/usr/local/bin/iwmon server start --iface wlan0") {
		t.Fatalf("Unexpected ExecStart in unit: %s", output)
	}
	if !strings.Contains(output, "WantedBy=default.target") {
		t.Fatalf("Expected user-level install target in unit: %s", output)
	}
}

func TestWriteFromTemplate(t *testing.T) {
	values := map[string]any{
		"iface": "wlp2s0",
	}
	destination := filepath.Join(t.TempDir(), "out.txt")
	err := WriteFromTemplate(context.TODO(), values, "iface={{ iface }}\n", destination, 0644)
	if err != nil {
		t.Fatalf("Failed to write from template - %s", err.Error())
	}
	data, err := os.ReadFile(destination)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "iface=wlp2s0\n" {
		t.Fatalf("Expected: iface=wlp2s0, got: %s", string(data))
	}
}
