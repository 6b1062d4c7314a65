package errors

import (
	"errors"
	"testing"
)

type customError struct {
	Msg string
}

func (e customError) Error() string { return e.Msg }

func TestNew(t *testing.T) {
	err := New("test error")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "test error" {
		t.Errorf("expected 'test error', got '%s'", err.Error())
	}
}

func TestWrap(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("wrap non-nil error", func(t *testing.T) {
		wrapped := Wrap(baseErr, "wrapped")
		if wrapped == nil {
			t.Fatal("expected wrapped error, got nil")
		}
		expected := "wrapped: base error"
		if wrapped.Error() != expected {
			t.Errorf("expected '%s', got '%s'", expected, wrapped.Error())
		}
		if !errors.Is(wrapped, baseErr) {
			t.Error("expected wrapped error to wrap baseErr")
		}
	})

	t.Run("wrap nil error", func(t *testing.T) {
		wrapped := Wrap(nil, "wrapped")
		if wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestWrapf(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("wrapf non-nil error", func(t *testing.T) {
		wrapped := Wrapf(baseErr, "wrapped %d", 123)
		if wrapped == nil {
			t.Fatal("expected wrapped error, got nil")
		}
		expected := "wrapped 123: base error"
		if wrapped.Error() != expected {
			t.Errorf("expected '%s', got '%s'", expected, wrapped.Error())
		}
		if !errors.Is(wrapped, baseErr) {
			t.Error("expected wrapped error to wrap baseErr")
		}
	})

	t.Run("wrapf nil error", func(t *testing.T) {
		wrapped := Wrapf(nil, "wrapped %d", 123)
		if wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestIs(t *testing.T) {
	t.Run("matches sentinel through wrap chain", func(t *testing.T) {
		wrapped := Wrap(Wrap(ErrNotFound, "inner"), "outer")
		if !Is(wrapped, ErrNotFound) {
			t.Error("expected wrapped error to match ErrNotFound")
		}
	})

	t.Run("does not match unrelated sentinel", func(t *testing.T) {
		wrapped := Wrap(ErrConflict, "context")
		if Is(wrapped, ErrNotFound) {
			t.Error("expected wrapped conflict not to match ErrNotFound")
		}
	})
}

func TestAs(t *testing.T) {
	wrapped := Wrap(customError{Msg: "boom"}, "context")

	var ce customError
	if !As(wrapped, &ce) {
		t.Fatal("expected As to find customError")
	}
	if ce.Msg != "boom" {
		t.Errorf("expected 'boom', got '%s'", ce.Msg)
	}
}
