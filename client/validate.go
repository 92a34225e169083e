package client

import (
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// maxErrBodySize caps the amount of response body kept when building an
// error for an unacceptable status code.
const maxErrBodySize = 4 << 10 // 4KB

// ValidateResponse checks a response's status code and Content-Type against
// what r accepts. The status code is checked first. body enriches the
// status error and may be nil when unknown; a known empty body skips the
// Content-Type check, as there is nothing to interpret.
func ValidateResponse(r Request, statusCode int, contentType string, body []byte) error {
	if !StatusCodesOf(r).Contains(statusCode) {
		return statusError(statusCode, body)
	}

	if body != nil && len(body) == 0 {
		return nil
	}

	acceptable := ContentTypesOf(r)
	if !contentTypeAccepted(contentType, acceptable) {
		return &UnacceptableContentTypeError{
			ContentType: contentType,
			Acceptable:  acceptable,
		}
	}

	return nil
}

func statusError(statusCode int, body []byte) error {
	if len(body) > maxErrBodySize {
		body = body[:maxErrBodySize]
	}

	err := ErrUnexpectedStatusCode
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		err = fmt.Errorf("%w: %w", ErrAuthFailure, ErrUnexpectedStatusCode)
	}

	return &UnexpectedStatusError{
		StatusCode: statusCode,
		Body:       string(body),
		Err:        err,
	}
}

// contentTypeAccepted reports whether the response media type matches one
// of the acceptable patterns. A response without a Content-Type only
// passes a "*/*" pattern.
func contentTypeAccepted(contentType string, acceptable []string) bool {
	for _, a := range acceptable {
		if strings.TrimSpace(a) == "*/*" {
			return true
		}
	}

	respType, respSub, ok := splitMediaType(contentType)
	if !ok {
		return false
	}

	for _, a := range acceptable {
		accType, accSub, ok := splitMediaType(a)
		if !ok {
			continue
		}

		if accType != "*" && accType != respType {
			continue
		}
		if accSub == "*" || accSub == respSub {
			return true
		}
	}

	return false
}

// splitMediaType lower-cases v, drops any parameters and splits it into
// type and subtype.
func splitMediaType(v string) (string, string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", "", false
	}

	mediaType, _, err := mime.ParseMediaType(v)
	if err != nil {
		// Tolerate malformed parameters, the media type itself is what we match.
		mediaType = strings.ToLower(strings.TrimSpace(strings.SplitN(v, ";", 2)[0]))
	}

	typ, sub, found := strings.Cut(mediaType, "/")
	if !found || typ == "" || sub == "" {
		return "", "", false
	}

	return typ, sub, true
}
