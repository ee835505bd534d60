package core

import (
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	err := NewNotFoundError("dataset", "ds-1")
	if !IsNotFound(err) {
		t.Error("NewNotFoundError should satisfy IsNotFound")
	}
	if !IsNotFound(fmt.Errorf("loading: %w", err)) {
		t.Error("IsNotFound should see through wrapping")
	}
	if IsNotFound(fmt.Errorf("unrelated")) {
		t.Error("unrelated errors are not not-found")
	}
}
