// Package diagnosis turns transport and HTTP failures into structured,
// human-readable explanations with remediation steps.
package diagnosis

import (
	"fmt"
)

// Kind identifies the family of a failure.
type Kind string

const (
	KindCrossOrigin       Kind = "cross-origin-policy"
	KindNetwork           Kind = "network-unreachable"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindNotFound          Kind = "not-found"
	KindUnprocessable     Kind = "unprocessable"
	KindServerError       Kind = "server-error"
	KindMalformedResponse Kind = "malformed-response"
	KindTimeout           Kind = "timeout"
	KindUnknownHTTP       Kind = "unknown-http"
	KindUnknown           Kind = "unknown"
)

// Context tags the call site. It only changes wording, never detection.
type Context string

const (
	ContextSource      Context = "fetch-from-source"
	ContextDestination Context = "sync-to-destination"
)

// Diagnosis is a structured explanation of a single failure.
type Diagnosis struct {
	Kind             Kind
	Title            string
	Message          string
	Explanation      string
	RemediationSteps []string
	TechnicalDetail  string
}

// HTTPError is a non-success HTTP response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Error is a classified failure. Its message is meant to be shown to a user as
// is; the transport error stays reachable through Unwrap.
type Error struct {
	Diagnosis Diagnosis
	Cause     error
	// Detailed appends the first remediation step to the message.
	Detailed bool
}

func NewError(cause error, context Context) *Error {
	return &Error{
		Diagnosis: Classify(cause, context),
		Cause:     cause,
		Detailed:  true,
	}
}

func (e *Error) Error() string {
	if e.Detailed {
		return FormatShort(e.Diagnosis)
	}
	return e.Diagnosis.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
