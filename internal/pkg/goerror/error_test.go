package goerror

import (
	"errors"
	"net/http"
	"testing"
)

func TestNewBusiness(t *testing.T) {
	err := NewBusiness("user not found", CodeNotFound)

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("NewBusiness() returned %T, want *Error", err)
	}
	if gerr.Msg() != "user not found" {
		t.Fatalf("Msg() = %q, want user not found", gerr.Msg())
	}
	if gerr.Type() != TypeBusiness {
		t.Fatalf("Type() = %v, want TypeBusiness", gerr.Type())
	}
	if gerr.Code() != CodeNotFound {
		t.Fatalf("Code() = %v, want CodeNotFound", gerr.Code())
	}
	if gerr.StatusCode() != http.StatusNotFound {
		t.Fatalf("StatusCode() = %d, want 404", gerr.StatusCode())
	}
}

func TestNewServerWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewServer(cause)

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("NewServer() returned %T, want *Error", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("NewServer() must keep the cause reachable via errors.Is")
	}
	if gerr.Msg() != "Internal server error" {
		t.Fatalf("Msg() = %q, want the generic server message", gerr.Msg())
	}
	if gerr.Error() != "connection refused" {
		t.Fatalf("Error() = %q, want the underlying message", gerr.Error())
	}
	if gerr.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("StatusCode() = %d, want 500", gerr.StatusCode())
	}
}

func TestNewInvalidInputFields(t *testing.T) {
	err := NewInvalidInput(nil, "phone", "must be e164", "email", "must be an email")

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("NewInvalidInput() returned %T, want *Error", err)
	}
	if gerr.Code() != CodeInvalidInput {
		t.Fatalf("Code() = %v, want CodeInvalidInput", gerr.Code())
	}
	fields := gerr.Fields()
	if fields["phone"] != "must be e164" || fields["email"] != "must be an email" {
		t.Fatalf("Fields() = %v, want both field messages", fields)
	}
}

func TestNewInvalidInputOddPairs(t *testing.T) {
	err := NewInvalidInput(nil, "phone")

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("NewInvalidInput() returned %T, want *Error", err)
	}
	if gerr.Code() != CodeInvalidFormat {
		t.Fatalf("Code() = %v, want CodeInvalidFormat for an odd kv list", gerr.Code())
	}
}

func TestNewInvalidFormat(t *testing.T) {
	var gerr *Error
	if !errors.As(NewInvalidFormat(), &gerr) {
		t.Fatal("NewInvalidFormat() did not return *Error")
	}
	if gerr.Msg() != "Invalid request body" {
		t.Fatalf("Msg() = %q, want the default body message", gerr.Msg())
	}

	if !errors.As(NewInvalidFormat("at least one of sms or email must be requested"), &gerr) {
		t.Fatal("NewInvalidFormat(msg) did not return *Error")
	}
	if gerr.Msg() != "at least one of sms or email must be requested" {
		t.Fatalf("Msg() = %q, want the custom message", gerr.Msg())
	}
	if gerr.StatusCode() != http.StatusBadRequest {
		t.Fatalf("StatusCode() = %d, want 400", gerr.StatusCode())
	}
}

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidFormat, http.StatusBadRequest},
		{CodeInvalidInput, http.StatusUnprocessableEntity},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeTooManyRequest, http.StatusTooManyRequests},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeTimeout, http.StatusRequestTimeout},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.code.String(), func(t *testing.T) {
			err := NewBusiness("x", tc.code)

			var gerr *Error
			if !errors.As(err, &gerr) {
				t.Fatalf("NewBusiness() returned %T, want *Error", err)
			}
			if got := gerr.StatusCode(); got != tc.want {
				t.Fatalf("StatusCode() = %d, want %d", got, tc.want)
			}
		})
	}
}
