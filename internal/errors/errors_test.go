package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestRouteError(t *testing.T) {
	err := NewRouteError(http.StatusNotFound, "no route for /nope")

	expected := "404 Not Found: no route for /nope"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !errors.Is(err, ErrRouteNotFound) {
		t.Error("404 RouteError should match ErrRouteNotFound")
	}
	if errors.Is(err, ErrMethodNotAllowed) {
		t.Error("404 RouteError should not match ErrMethodNotAllowed")
	}

	// Is with another RouteError compares status
	if !err.Is(NotFound("/other")) {
		t.Error("expected RouteErrors with the same status to match")
	}
	if err.Is(BadRequest("x")) {
		t.Error("expected RouteErrors with different status not to match")
	}

	// Is with standard errors
	if err.Is(errors.New("route not found")) {
		t.Error("expected RouteError not to match an unrelated error")
	}
}

func TestRouteErrorWithoutData(t *testing.T) {
	err := NewRouteError(http.StatusTeapot, "")
	if err.Error() != "418 I'm a teapot" {
		t.Errorf("Error() = %q", err.Error())
	}

	unknown := NewRouteError(599, "")
	if unknown.StatusText != "Unknown Status" {
		t.Errorf("StatusText = %q, want Unknown Status", unknown.StatusText)
	}
}

func TestRouteErrorHelpers(t *testing.T) {
	if !errors.Is(MethodNotAllowed("DELETE", "/preview"), ErrMethodNotAllowed) {
		t.Error("MethodNotAllowed should match ErrMethodNotAllowed")
	}
	if !errors.Is(BadRequest("missing text"), ErrBadRequest) {
		t.Error("BadRequest should match ErrBadRequest")
	}

	wrapped := fmt.Errorf("handler: %w", NotFound("/x"))
	if got := GetHTTPStatus(wrapped); got != http.StatusNotFound {
		t.Errorf("GetHTTPStatus() = %d, want 404", got)
	}
	if got := GetHTTPStatus(errors.New("plain")); got != 0 {
		t.Errorf("GetHTTPStatus(plain) = %d, want 0", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		value      any
		wantStatus int
		wantMsg    string
		check      func(t *testing.T, f Fault)
	}{
		{
			name:       "route error",
			value:      NotFound("/missing"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "404 Not Found: no route for /missing",
			check: func(t *testing.T, f Fault) {
				rf, ok := f.(*RouteFault)
				if !ok {
					t.Fatalf("expected *RouteFault, got %T", f)
				}
				if rf.StatusText != "Not Found" {
					t.Errorf("StatusText = %q", rf.StatusText)
				}
			},
		},
		{
			name:       "wrapped route error",
			value:      fmt.Errorf("render page: %w", MethodNotAllowed("PUT", "/")),
			wantStatus: http.StatusMethodNotAllowed,
			wantMsg:    "405 Method Not Allowed: PUT is not supported on /",
		},
		{
			name:       "generic error",
			value:      errors.New("database exploded"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "database exploded",
			check: func(t *testing.T, f Fault) {
				if _, ok := f.(*RuntimeFault); !ok {
					t.Fatalf("expected *RuntimeFault, got %T", f)
				}
			},
		},
		{
			name:       "string value",
			value:      "something odd",
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "unknown error: something odd",
			check: func(t *testing.T, f Fault) {
				if _, ok := f.(*UnknownFault); !ok {
					t.Fatalf("expected *UnknownFault, got %T", f)
				}
			},
		},
		{
			name:       "int value",
			value:      42,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "unknown error: 42",
		},
		{
			name:       "nil value",
			value:      nil,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "unknown error: nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Classify(tt.value)
			if f.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", f.StatusCode(), tt.wantStatus)
			}
			if f.Message() != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", f.Message(), tt.wantMsg)
			}
			if tt.check != nil {
				tt.check(t, f)
			}
		})
	}
}

func TestClassifyFaultIsIdentity(t *testing.T) {
	f := &UnknownFault{Value: "x"}
	if Classify(f) != Fault(f) {
		t.Error("classifying a Fault should return it unchanged")
	}
}

func TestClassifyPanicCapturesStack(t *testing.T) {
	var f Fault
	func() {
		defer func() {
			f = ClassifyPanic(recover())
		}()
		panic(errors.New("boom"))
	}()

	rf, ok := f.(*RuntimeFault)
	if !ok {
		t.Fatalf("expected *RuntimeFault, got %T", f)
	}
	if rf.Message() != "boom" {
		t.Errorf("Message() = %q, want boom", rf.Message())
	}
	if !strings.Contains(rf.Stack, "goroutine") {
		t.Errorf("expected a stack trace, got %q", rf.Stack)
	}
	if rf.Unwrap() == nil || rf.Unwrap().Error() != "boom" {
		t.Error("RuntimeFault should unwrap to the panicked error")
	}
}
