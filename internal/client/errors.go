/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind classifies a failed Atlas API attempt. Every error returned by
// AtlasAPIClient carries exactly one kind; callers branch on KindOf.
type ErrorKind int

const (
	// KindUnknown is the zero kind, reported for errors not raised by this package
	KindUnknown ErrorKind = iota
	// KindMissingCredentials means an empty public or private key, checked before any request
	KindMissingCredentials
	// KindNetworkError means the host was unreachable or the request timed out
	KindNetworkError
	// KindAuthError means the server rejected the request after digest negotiation
	KindAuthError
	// KindMalformedResponse means a 2xx response whose body could not be validated
	KindMalformedResponse
)

// String returns the human readable name of the kind
func (k ErrorKind) String() string {
	switch k {
	case KindMissingCredentials:
		return "Missing credentials"
	case KindNetworkError:
		return "Network error"
	case KindAuthError:
		return "Authentication error"
	case KindMalformedResponse:
		return "Malformed response"
	default:
		return "Unknown error"
	}
}

// Error is the failure outcome of one Atlas API attempt
type Error struct {
	kind ErrorKind
	// label replaces the kind name in the rendered message when set
	label string
	msg   string
	cause error
}

// Error implements the error interface
func (e *Error) Error() string {
	label := e.label
	if len(label) == 0 {
		label = e.kind.String()
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s", label, e.msg, e.cause.Error())
	}
	return fmt.Sprintf("%s: %s", label, e.msg)
}

// Kind returns the classification of this error
func (e *Error) Kind() ErrorKind {
	return e.kind
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

// KindOf extracts the ErrorKind from err, or KindUnknown for foreign errors
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return KindUnknown
}

// atlasErrorBody is the structured error document returned by the
// Atlas Administration API on non-2xx responses
type atlasErrorBody struct {
	Error     int    `json:"error,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// messageFromResponseBody extracts a printable message from the Atlas error
// document, falling back to the HTTP status when the body is not structured
func messageFromResponseBody(status string, body []byte) string {
	errorBlock := atlasErrorBody{}
	if err := json.Unmarshal(body, &errorBlock); err != nil {
		return status
	}
	msg := status
	if errorBlock.ErrorCode != "" {
		msg = fmt.Sprintf("%s (%s)", msg, errorBlock.ErrorCode)
	}
	if errorBlock.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, errorBlock.Detail)
	} else if errorBlock.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, errorBlock.Reason)
	}
	return msg
}
