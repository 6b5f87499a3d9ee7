package shogun

import (
	"errors"
	"fmt"
	"syscall"
	"testing"
)

func TestErrorFormatsOpAndMessage(t *testing.T) {
	e := NewError("boot.pic", ErrCodePortUnavailable, "could not acquire master command port")
	want := "shogun: boot.pic: could not acquire master command port"
	if e.Error() != want {
		t.Fatalf("Error() = %q, want %q", e.Error(), want)
	}
}

func TestErrorFallsBackToCodeWhenMsgEmpty(t *testing.T) {
	e := NewError("heap.allocate", ErrCodeHeapExhausted, "")
	want := "shogun: heap.allocate: heap exhausted"
	if e.Error() != want {
		t.Fatalf("Error() = %q, want %q", e.Error(), want)
	}
}

func TestWrapErrorPreservesCode(t *testing.T) {
	inner := NewError("rtc.init", ErrCodePortUnavailable, "CMOS control port taken")
	wrapped := WrapError("boot", inner)
	if wrapped.Code != ErrCodePortUnavailable {
		t.Fatalf("wrapped code = %v, want %v", wrapped.Code, ErrCodePortUnavailable)
	}
	if !IsCode(wrapped, ErrCodePortUnavailable) {
		t.Error("expected IsCode to match the preserved code")
	}
}

func TestWrapErrorNilIsNil(t *testing.T) {
	if WrapError("op", nil) != nil {
		t.Fatal("expected WrapError(nil) to return nil")
	}
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	e1 := NewError("a", ErrCodeBootTimeout, "timed out")
	e2 := NewError("b", ErrCodeBootTimeout, "also timed out")
	if !errors.Is(e1, e2) {
		t.Error("expected errors with the same Code to satisfy errors.Is")
	}
}

func TestNewErrnoErrorMapsPermissionDenied(t *testing.T) {
	e := NewErrnoError("hwio.real", syscall.EPERM)
	if e.Code != ErrCodePermissionDenied {
		t.Fatalf("code = %v, want %v", e.Code, ErrCodePermissionDenied)
	}
	if e.Errno != syscall.EPERM {
		t.Fatalf("errno = %v, want %v", e.Errno, syscall.EPERM)
	}
}

func TestWrapErrorExtractsErrnoFromChain(t *testing.T) {
	cause := fmt.Errorf("iopl: %w", syscall.EPERM)
	wrapped := WrapError("hwio.real", cause)
	if wrapped.Errno != syscall.EPERM {
		t.Fatalf("errno = %v, want %v", wrapped.Errno, syscall.EPERM)
	}
	if wrapped.Code != ErrCodePermissionDenied {
		t.Fatalf("code = %v, want %v", wrapped.Code, ErrCodePermissionDenied)
	}
}

func TestErrorUnwrapExposesInner(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	wrapped := WrapError("op", cause)
	if !errors.Is(wrapped, wrapped) {
		t.Fatal("sanity: error should equal itself")
	}
	if errors.Unwrap(wrapped) != cause {
		t.Error("expected Unwrap to expose the original cause")
	}
}
