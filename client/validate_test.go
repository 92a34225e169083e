package client_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/adamwoolhether/firework/client"
)

func TestValidateResponse(t *testing.T) {
	jsonBody := []byte(`{"ok":true}`)

	testCases := map[string]struct {
		req         client.Request
		status      int
		contentType string
		body        []byte
		expErr      error
	}{
		"default accepts 200 any type": {
			req:         testGETRequest{},
			status:      http.StatusOK,
			contentType: "text/html",
			body:        jsonBody,
		},
		"default accepts 399": {
			req:    testGETRequest{},
			status: 399,
			body:   jsonBody,
		},
		"default rejects 404": {
			req:         testGETRequest{},
			status:      http.StatusNotFound,
			contentType: "application/json",
			body:        jsonBody,
			expErr:      client.ErrUnexpectedStatusCode,
		},
		"default rejects 199": {
			req:    testGETRequest{},
			status: 199,
			expErr: client.ErrUnexpectedStatusCode,
		},
		"401 is an auth failure": {
			req:    testGETRequest{},
			status: http.StatusUnauthorized,
			expErr: client.ErrAuthFailure,
		},
		"403 is an auth failure": {
			req:    testGETRequest{},
			status: http.StatusForbidden,
			expErr: client.ErrAuthFailure,
		},
		"html rejected when json expected": {
			req:         acceptRequest{headers: map[string]string{"Accept": "application/json"}},
			status:      http.StatusOK,
			contentType: "text/html",
			body:        jsonBody,
			expErr:      client.ErrUnacceptableContentType,
		},
		"status checked before content type": {
			req:         acceptRequest{headers: map[string]string{"Accept": "application/json"}},
			status:      http.StatusInternalServerError,
			contentType: "text/html",
			body:        jsonBody,
			expErr:      client.ErrUnexpectedStatusCode,
		},
		"parameters ignored": {
			req:         acceptRequest{headers: map[string]string{"Accept": "application/json"}},
			status:      http.StatusOK,
			contentType: "application/json; charset=utf-8",
			body:        jsonBody,
		},
		"case-insensitive media type": {
			req:         acceptRequest{headers: map[string]string{"Accept": "application/json"}},
			status:      http.StatusOK,
			contentType: "Application/JSON",
			body:        jsonBody,
		},
		"subtype wildcard": {
			req:         acceptRequest{types: []string{"application/*"}},
			status:      http.StatusOK,
			contentType: "application/problem+json",
			body:        jsonBody,
		},
		"type wildcard does not cross types": {
			req:         acceptRequest{types: []string{"application/*"}},
			status:      http.StatusOK,
			contentType: "text/plain",
			body:        jsonBody,
			expErr:      client.ErrUnacceptableContentType,
		},
		"missing content type rejected when specific": {
			req:    acceptRequest{types: []string{"application/json"}},
			status: http.StatusOK,
			body:   jsonBody,
			expErr: client.ErrUnacceptableContentType,
		},
		"known empty body skips content type": {
			req:    acceptRequest{types: []string{"application/json"}},
			status: http.StatusNoContent,
			body:   []byte{},
		},
		"custom status set": {
			req:    acceptRequest{codes: client.StatusSet{http.StatusNotFound}},
			status: http.StatusNotFound,
			body:   jsonBody,
		},
		"custom status set rejects 200": {
			req:    acceptRequest{codes: client.StatusSet{http.StatusNotFound}},
			status: http.StatusOK,
			body:   jsonBody,
			expErr: client.ErrUnexpectedStatusCode,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := client.ValidateResponse(tc.req, tc.status, tc.contentType, tc.body)
			if tc.expErr == nil {
				if err != nil {
					t.Fatalf("exp no error, got: %v", err)
				}
				return
			}

			if !errors.Is(err, tc.expErr) {
				t.Fatalf("exp error %v, got: %v", tc.expErr, err)
			}
		})
	}
}

func TestValidateResponse_StatusErrorDetail(t *testing.T) {
	body := []byte(strings.Repeat("x", 5000))

	err := client.ValidateResponse(testGETRequest{}, http.StatusUnauthorized, "text/plain", body)

	var statusErr *client.UnexpectedStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("exp *UnexpectedStatusError, got: %v", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("exp status %d, got %d", http.StatusUnauthorized, statusErr.StatusCode)
	}
	if len(statusErr.Body) != 4096 {
		t.Errorf("exp body capped at 4096 bytes, got %d", len(statusErr.Body))
	}
	if !errors.Is(err, client.ErrUnexpectedStatusCode) {
		t.Error("exp auth failure to still be an unexpected status code")
	}
}

func TestValidateResponse_ContentTypeErrorDetail(t *testing.T) {
	req := acceptRequest{headers: map[string]string{"Accept": "application/json, application/xml"}}

	err := client.ValidateResponse(req, http.StatusOK, "text/html", []byte("<html/>"))

	var ctErr *client.UnacceptableContentTypeError
	if !errors.As(err, &ctErr) {
		t.Fatalf("exp *UnacceptableContentTypeError, got: %v", err)
	}
	if ctErr.ContentType != "text/html" {
		t.Errorf("exp content type %q, got %q", "text/html", ctErr.ContentType)
	}
	if len(ctErr.Acceptable) != 2 {
		t.Errorf("exp 2 acceptable types, got %v", ctErr.Acceptable)
	}
}
