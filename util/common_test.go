// Copyright (c) tkc17.

package util

import (
	"context"
	"testing"
)

func TestIsDigits(t *testing.T) {
	if !IsDigits("1234") {
		t.Fatalf("Expected true for 1234")
	}
	if IsDigits("12a4") {
		t.Fatalf("Expected false for 12a4")
	}
	if IsDigits("") {
		t.Fatalf("Expected false for empty string")
	}
}

func TestValidateIfaceName(t *testing.T) {
	for _, name := range []string{"wlan0", "wlp3s0", "wifi-ap_1", "eth0.100", "wl:an"} {
		got, err := ValidateIfaceName(name)
		if err != nil {
			t.Fatalf("Expected %s to be valid - %s", name, err.Error())
		}
		if got != name {
			t.Fatalf("Expected %s, found %s", name, got)
		}
	}
	for _, name := range []string{"", "wlan0; rm -rf /", "wlan 0", "wlan$0"} {
		if _, err := ValidateIfaceName(name); err == nil {
			t.Fatalf("Expected %q to be invalid", name)
		}
	}
}

func TestCorrelationID(t *testing.T) {
	ctx := context.Background()
	if got := CorrelationID(ctx); got != "" {
		t.Fatalf("Expected empty correlation ID, found %s", got)
	}
	corrId := NewUUID().String()
	ctx = WithCorrelationID(ctx, corrId)
	if got := CorrelationID(ctx); got != corrId {
		t.Fatalf("Expected %s, found %s", corrId, got)
	}
}
