package id

import (
	"strings"
	"testing"
)

func TestGetUUID(t *testing.T) {
	a := GetUUID()
	b := GetUUID()
	if a == "" || b == "" {
		t.Fatal("GetUUID returned empty string")
	}
	if a == b {
		t.Errorf("GetUUID returned duplicate: %s", a)
	}
	if len(a) != 36 {
		t.Errorf("unexpected UUID length: %d", len(a))
	}
}

func TestGetUUIDWithoutHyphen(t *testing.T) {
	id := GetUUIDWithoutHyphen()
	if strings.Contains(id, "-") {
		t.Errorf("expected no hyphens: %s", id)
	}
	if len(id) != 32 {
		t.Errorf("unexpected length: %d", len(id))
	}
}

func TestGetULID(t *testing.T) {
	id := GetULID()
	if len(id) != 26 {
		t.Errorf("unexpected ULID length: %d", len(id))
	}
}
