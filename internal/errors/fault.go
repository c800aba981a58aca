package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
)

// Fault is what escaped a routed page. It has exactly three variants:
// *RouteFault, *RuntimeFault and *UnknownFault. The set is closed by the
// unexported method, so a type switch over those three is exhaustive.
type Fault interface {
	// Message is the human-readable text shown on the fallback screen.
	Message() string
	// StatusCode is the HTTP status the fallback screen is served with.
	StatusCode() int

	fault()
}

// RouteFault is a routing-layer error with status code and status text.
type RouteFault struct {
	Status     int
	StatusText string
	Data       string
}

// RuntimeFault is a generic runtime fault with message and stack trace.
type RuntimeFault struct {
	Msg   string
	Stack string
	Err   error
}

// UnknownFault wraps a thrown value that is neither a route error nor an error.
type UnknownFault struct {
	Value string
}

func (f *RouteFault) fault()   {}
func (f *RuntimeFault) fault() {}
func (f *UnknownFault) fault() {}

func (f *RouteFault) Message() string {
	if f.Data == "" {
		return fmt.Sprintf("%d %s", f.Status, f.StatusText)
	}
	return fmt.Sprintf("%d %s: %s", f.Status, f.StatusText, f.Data)
}

func (f *RouteFault) StatusCode() int { return f.Status }

func (f *RuntimeFault) Message() string { return f.Msg }

func (f *RuntimeFault) StatusCode() int { return http.StatusInternalServerError }

// Unwrap exposes the original error
func (f *RuntimeFault) Unwrap() error { return f.Err }

func (f *UnknownFault) Message() string {
	return fmt.Sprintf("unknown error: %s", f.Value)
}

func (f *UnknownFault) StatusCode() int { return http.StatusInternalServerError }

// Classify turns an error or a recovered panic value into a Fault. A
// RouteError anywhere in the chain wins over a plain error.
func Classify(v any) Fault {
	return classify(v, "")
}

// ClassifyPanic is Classify for values returned by recover(); it records
// the stack of the panicking goroutine. Call it from the deferred function.
func ClassifyPanic(v any) Fault {
	return classify(v, string(debug.Stack()))
}

func classify(v any, stack string) Fault {
	switch x := v.(type) {
	case Fault:
		return x
	case error:
		var re *RouteError
		if errors.As(x, &re) {
			return &RouteFault{Status: re.Status, StatusText: re.StatusText, Data: re.Data}
		}
		return &RuntimeFault{Msg: x.Error(), Stack: stack, Err: x}
	case nil:
		return &UnknownFault{Value: "nil"}
	default:
		return &UnknownFault{Value: fmt.Sprintf("%v", x)}
	}
}
