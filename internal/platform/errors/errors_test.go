package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeForbidden, http.StatusForbidden},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeExternalStore, http.StatusBadGateway},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestCodeString(t *testing.T) {
	if ErrorCodeExternalStore.String() != "external_store" {
		t.Fatalf("got %q", ErrorCodeExternalStore)
	}
	if ErrorCode(9999).String() != "code(9999)" {
		t.Fatalf("got %q", ErrorCode(9999))
	}
}

func TestErrorFormatting(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render")
	}
	cause := fmt.Errorf("connection refused")
	err := WithOp(ExternalStoref(cause, "list notices"), "assistant.notice")
	if got := err.Error(); got != "assistant.notice: list notices: connection refused" {
		t.Fatalf("Error() = %q", got)
	}
	if !stderrs.Is(err, cause) || Root(err) != cause {
		t.Fatalf("cause lost")
	}
	e, ok := As(err)
	if !ok || e.Op() != "assistant.notice" || e.Message() != "list notices" {
		t.Fatalf("As = %+v %v", e, ok)
	}
}

func TestWire(t *testing.T) {
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("nil wire = %+v", w)
	}
	w := WireFrom(WithField(InvalidArgf("title must be at least %d characters", 5), "title"))
	if w.Code != ErrorCodeInvalidArgument || w.Reason != "invalid_argument" || w.Field != "title" {
		t.Fatalf("wire = %+v", w)
	}
	w = WireFrom(stderrs.New("plain"))
	if w.Code != ErrorCodeUnknown || w.Message != "plain" {
		t.Fatalf("foreign wire = %+v", w)
	}
	status, w := HTTP(ExternalStoref(stderrs.New("down"), "append reminder"))
	if status != http.StatusBadGateway || w.Message != "append reminder" {
		t.Fatalf("HTTP = %d %+v", status, w)
	}
	if status, _ := HTTP(nil); status != http.StatusOK {
		t.Fatalf("nil status = %d", status)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, ErrorCodeDB, "x") != nil || ExternalStoref(nil, "x") != nil {
		t.Fatalf("wrapping nil must give nil")
	}
	if WithField(nil, "f") != nil {
		t.Fatalf("WithField(nil) must give nil")
	}
}

func TestWithFieldForeign(t *testing.T) {
	err := WithField(stderrs.New("boom"), "text")
	e, ok := As(err)
	if !ok || e.Field() != "text" || e.Code() != ErrorCodeUnknown {
		t.Fatalf("got %+v", err)
	}
	if WithOp(stderrs.New("x"), "op").Error() != "x" {
		t.Fatalf("WithOp should pass foreign errors through")
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("ctx: %w", NotFoundf("notice %s", "n1"))
	if !IsCode(err, ErrorCodeNotFound) || IsCode(nil, ErrorCodeUnknown) {
		t.Fatalf("IsCode wrong")
	}
	if HTTPStatus(err) != http.StatusNotFound {
		t.Fatalf("status wrong")
	}
}
