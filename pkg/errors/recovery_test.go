package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "GrowTree")
		panic("index out of range")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("expected PanicError, got %T", err)
	}
	if panicErr.Operation != "GrowTree" {
		t.Errorf("Operation = %q, want GrowTree", panicErr.Operation)
	}
	if panicErr.StackTrace == "" {
		t.Error("stack trace should not be empty")
	}
}

func TestRecover_NoPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "GrowTree")
		return nil
	}

	if err := testFunc(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestRecover_ExistingError(t *testing.T) {
	original := errors.New("original failure")
	testFunc := func() (err error) {
		defer Recover(&err, "GrowTree")
		err = original
		panic("subsequent panic")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, original) {
		t.Errorf("recovered error should wrap the original: %v", err)
	}
	if !strings.Contains(err.Error(), "subsequent panic") {
		t.Errorf("recovered error should mention the panic: %v", err)
	}
}

func TestSafeExecute(t *testing.T) {
	err := SafeExecute("buildNode", func() error {
		panic("boom")
	})
	if err == nil {
		t.Fatal("expected error from panicking function")
	}

	err = SafeExecute("buildNode", func() error {
		return nil
	})
	if err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}
