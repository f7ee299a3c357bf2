package errors

import (
	"testing"
)

func TestWrapStack(t *testing.T) {
	err := New("some error")

	if HasStack(err) {
		t.Fatal("plain error should not carry a stack")
	}

	err = WrapStack(err)

	if !HasStack(err) {
		t.Fatal("wrapped error should carry a stack")
	}

	if GetStack(err) == "" {
		t.Fatal("stack should not be empty")
	}
}

func TestIs(t *testing.T) {
	sentinel := New("SENTINEL")

	err := WrapMessage(sentinel, "context")

	if !Is(err, sentinel) {
		t.Fatal("wrapped sentinel should match")
	}
	if Is(err, New("other")) {
		t.Fatal("different error should not match")
	}
}
