package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "pbl/internal/platform/errors"
)

type askBody struct {
	Text string `json:"text" validate:"required,max=20"`
}

func post(body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	}
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON_OK(t *testing.T) {
	got, err := ParseJSON[askBody](post(`{"text":"hello"}`))
	if err != nil || got.Text != "hello" {
		t.Fatalf("got %+v, %v", got, err)
	}
}

func TestParseJSON_Errors(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		wantCode  perr.ErrorCode
		wantField string
		wantMsg   string
	}{
		{"empty", "", perr.ErrorCodeJSON, "", "empty body"},
		{"malformed", `{"text":`, perr.ErrorCodeJSON, "", "invalid JSON"},
		{"unknown field", `{"text":"hi","mood":"x"}`, perr.ErrorCodeJSON, "", "unknown field"},
		{"trailing", `{"text":"hi"}{"text":"again"}`, perr.ErrorCodeJSON, "", "trailing"},
		{"required", `{"text":""}`, perr.ErrorCodeValidation, "text", "text is a required field"},
		{"too long", `{"text":"this text is far too long to pass"}`, perr.ErrorCodeValidation, "text", "at most 20 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseJSON[askBody](post(tc.body))
			e, ok := perr.As(err)
			if !ok {
				t.Fatalf("expected *perr.Error, got %v", err)
			}
			if e.Code() != tc.wantCode || e.Field() != tc.wantField {
				t.Fatalf("code=%v field=%q, want %v %q", e.Code(), e.Field(), tc.wantCode, tc.wantField)
			}
			if !strings.Contains(e.Error(), tc.wantMsg) {
				t.Fatalf("message %q does not mention %q", e.Error(), tc.wantMsg)
			}
		})
	}
}

func TestParseJSON_Options(t *testing.T) {
	type optional struct {
		Note string `json:"note"`
	}
	if _, err := ParseJSON[optional](post(""), Options{AllowEmpty: true}); err != nil {
		t.Fatalf("empty body allowed: %v", err)
	}
	got, err := ParseJSON[optional](post(`{"note":"n","extra":1}`), Options{AllowUnknown: true})
	if err != nil || got.Note != "n" {
		t.Fatalf("unknown allowed: %+v %v", got, err)
	}
	_, err = ParseJSON[optional](post(`{"note":"`+strings.Repeat("x", 100)+`"}`), Options{MaxBytes: 16})
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected cap to cut the body, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	err := RegisterValidation("even_len", func(fl FieldLevel) bool {
		return len(fl.Field().String())%2 == 0
	}, "{0} must have an even length")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	type body struct {
		Code string `json:"code" validate:"even_len"`
	}
	_, err = ParseJSON[body](post(`{"code":"abc"}`))
	if !strings.Contains(err.Error(), "code must have an even length") || perr.WireFrom(err).Field != "code" {
		t.Fatalf("custom message missing: %v", err)
	}
	if _, err := ParseJSON[body](post(`{"code":"ab"}`)); err != nil {
		t.Fatalf("even code rejected: %v", err)
	}
}
