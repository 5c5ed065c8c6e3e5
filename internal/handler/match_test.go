package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestConfirmRequiresTokenAndType(t *testing.T) {
	h := NewMatchHandler(nil, zerolog.Nop())
	cases := []struct {
		name string
		body string
	}{
		{name: "missing confirm_type", body: `{"guest_token":"abc"}`},
		{name: "missing guest_token", body: `{"confirm_type":"driver"}`},
		{name: "missing both", body: `{}`},
		{name: "blank confirm_type", body: `{"guest_token":"abc","confirm_type":"  "}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPut, "/ride-matches/1/confirm", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues("1")

			if err := h.Confirm(c); err != nil {
				t.Fatalf("Confirm() error = %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if !strings.Contains(rec.Body.String(), "Guest token and confirm_type are required") {
				t.Errorf("body = %q, want the required-fields message", rec.Body.String())
			}
		})
	}
}

func TestDeclineRequiresTokenOnly(t *testing.T) {
	h := NewMatchHandler(nil, zerolog.Nop())
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/ride-matches/1/decline", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.Decline(c); err != nil {
		t.Fatalf("Decline() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "Guest token is required") {
		t.Errorf("body = %q, want the token-required message", rec.Body.String())
	}
}
