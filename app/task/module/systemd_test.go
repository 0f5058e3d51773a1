// Copyright (c) tkc17.

package module

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUnitFileName(t *testing.T) {
	if got := unitFileName("iwmon"); got != "iwmon.service" {
		t.Fatalf("Expected: iwmon.service, got: %s", got)
	}
	if got := unitFileName("iwmon.service"); got != "iwmon.service" {
		t.Fatalf("Expected: iwmon.service, got: %s", got)
	}
	if got := unitFileName("iwmon.timer"); got != "iwmon.timer" {
		t.Fatalf("Expected: iwmon.timer, got: %s", got)
	}
}

func TestIsUserSystemd(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	yes, err := IsUserSystemd("iwmon")
	if err != nil {
		t.Fatalf("Error in checking unit file - %s", err.Error())
	}
	if yes {
		t.Fatalf("Expected no unit file")
	}
	unitDir := filepath.Join(home, UserSystemdUnitPath)
	if err := os.MkdirAll(unitDir, 0755); err != nil {
		t.Fatal(err)
	}
	unitPath := filepath.Join(unitDir, "iwmon.service")
	if err := os.WriteFile(unitPath, []byte("[Unit]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	yes, err = IsUserSystemd("iwmon")
	if err != nil {
		t.Fatalf("Error in checking unit file - %s", err.Error())
	}
	if !yes {
		t.Fatalf("Expected unit file at %s", unitPath)
	}
}
