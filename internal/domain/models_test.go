package domain

import (
	"strings"
	"testing"
)

func TestNewID_FormatAndUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		id := NewID()
		if len(id) != 24 {
			t.Fatalf("id length = %d, want 24 (%q)", len(id), id)
		}
		if !IsValidID(id) {
			t.Fatalf("NewID produced invalid id %q", id)
		}
		if id != strings.ToLower(id) {
			t.Fatalf("id not lowercase: %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestIsValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"64f1c0ffee64f1c0ffee64f1", true},
		{"64F1C0FFEE64F1C0FFEE64F1", true}, // uppercase hex accepted
		{"64f1c0ffee64f1c0ffee64f", false}, // 23 chars
		{"64f1c0ffee64f1c0ffee64f12", false},
		{"zzf1c0ffee64f1c0ffee64f1", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidID(tt.id); got != tt.want {
			t.Errorf("IsValidID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusContacted, StatusRejected} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "Pending", "done", "PENDING", "archived"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
}

func TestTableNames(t *testing.T) {
	if got := (Contact{}).TableName(); got != "contacts" {
		t.Errorf("Contact table = %q", got)
	}
	if got := (Visitor{}).TableName(); got != "visitors" {
		t.Errorf("Visitor table = %q", got)
	}
}
