package diagnosis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_DetectionOrder(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected Kind
	}{
		{name: "cors", err: errors.New("blocked by CORS policy"), expected: KindCrossOrigin},
		{name: "allow origin header", err: errors.New("No 'Access-Control-Allow-Origin' header"), expected: KindCrossOrigin},
		{name: "failed to fetch is reported as cross-origin", err: errors.New("TypeError: Failed to fetch"), expected: KindCrossOrigin},
		{name: "network request failed", err: errors.New("Network request failed"), expected: KindCrossOrigin},
		{name: "connection refused", err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), expected: KindNetwork},
		{name: "offline", err: errors.New("browser is offline"), expected: KindNetwork},
		{name: "401", err: errors.New("HTTP 401: unauthorized"), expected: KindUnauthorized},
		{name: "403", err: errors.New("HTTP 403: forbidden"), expected: KindForbidden},
		{name: "404", err: errors.New("HTTP 404: not found"), expected: KindNotFound},
		{name: "422", err: errors.New("HTTP 422: bad fields"), expected: KindUnprocessable},
		{name: "500", err: errors.New("HTTP 500: boom"), expected: KindServerError},
		{name: "502", err: errors.New("HTTP 502"), expected: KindServerError},
		{name: "503", err: errors.New("HTTP 503"), expected: KindServerError},
		{name: "504", err: errors.New("HTTP 504"), expected: KindServerError},
		{name: "418", err: errors.New("HTTP 418: teapot"), expected: KindUnknownHTTP},
		{name: "network wins over status", err: errors.New("HTTP 500: network down"), expected: KindNetwork},
		{name: "json", err: errors.New("unexpected end of JSON input"), expected: KindMalformedResponse},
		{name: "parse", err: errors.New("could not parse body"), expected: KindMalformedResponse},
		{name: "timeout", err: errors.New("request Timeout"), expected: KindTimeout},
		{name: "unknown", err: errors.New("something odd"), expected: KindUnknown},
		{name: "nil", err: nil, expected: KindUnknown},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Classify(test.err, ContextSource).Kind)
			assert.Equal(t, test.expected, Classify(test.err, ContextDestination).Kind)
		})
	}
}

func TestClassify_TypedErrors(t *testing.T) {
	var syntaxErr error = &json.SyntaxError{Offset: 1}
	assert.Equal(t, KindMalformedResponse, Classify(fmt.Errorf("decoding body: %w", syntaxErr), ContextSource).Kind)

	assert.Equal(t, KindUnauthorized, Classify(&HTTPError{StatusCode: 401, Body: "no"}, ContextSource).Kind)
	assert.Equal(t, KindServerError, Classify(fmt.Errorf("insert: %w", &HTTPError{StatusCode: 503}), ContextDestination).Kind)

	assert.Equal(t, KindTimeout, Classify(context.DeadlineExceeded, ContextSource).Kind)

	dial := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("no route to host")}
	assert.Equal(t, KindNetwork, Classify(dial, ContextSource).Kind)

	dns := &net.DNSError{Err: "no such host", Name: "api.invalid"}
	assert.Equal(t, KindNetwork, Classify(dns, ContextSource).Kind)
}

func TestClassify_IgnoresRequestURL(t *testing.T) {
	err := &url.Error{Op: "Get", URL: "https://api.example.com/export.json", Err: context.DeadlineExceeded}

	diagnosis := Classify(err, ContextSource)

	assert.Equal(t, KindTimeout, diagnosis.Kind)
	assert.Equal(t, err.Error(), diagnosis.TechnicalDetail)
}

func TestClassify_NotFoundWordingDependsOnContext(t *testing.T) {
	err := errors.New("HTTP 404: not found")

	destination := Classify(err, ContextDestination)
	source := Classify(err, ContextSource)

	assert.Equal(t, KindNotFound, destination.Kind)
	assert.Equal(t, KindNotFound, source.Kind)
	require.NotEmpty(t, destination.RemediationSteps)
	assert.Contains(t, destination.RemediationSteps[0], "document ID")
	assert.Contains(t, destination.RemediationSteps[0], "table ID")
	assert.NotEqual(t, source.RemediationSteps, destination.RemediationSteps)
	assert.NotContains(t, strings.Join(source.RemediationSteps, " "), "table ID")
}

func TestClassify_UnknownContextUsesSourceWording(t *testing.T) {
	err := errors.New("HTTP 404")
	assert.Equal(t, Classify(err, ContextSource), Classify(err, Context("api_fetch")))
}

func TestClassify_UnknownCarriesTechnicalDetail(t *testing.T) {
	diagnosis := Classify(errors.New("weird failure"), ContextDestination)

	assert.Equal(t, KindUnknown, diagnosis.Kind)
	assert.Equal(t, "weird failure", diagnosis.TechnicalDetail)
}

func TestCatalogue_IsComplete(t *testing.T) {
	kinds := []Kind{
		KindCrossOrigin, KindNetwork, KindUnauthorized, KindForbidden, KindNotFound, KindUnprocessable,
		KindServerError, KindMalformedResponse, KindTimeout, KindUnknownHTTP, KindUnknown,
	}

	for _, context := range []Context{ContextSource, ContextDestination} {
		for _, kind := range kinds {
			d := lookup(kind, context)
			assert.NotEmpty(t, d.Title, "%s/%s", context, kind)
			assert.NotEmpty(t, d.Message, "%s/%s", context, kind)
			assert.NotEmpty(t, d.Explanation, "%s/%s", context, kind)
			assert.NotEmpty(t, d.RemediationSteps, "%s/%s", context, kind)
		}
	}
}

func TestLookup_ReturnsCopies(t *testing.T) {
	first := lookup(KindTimeout, ContextSource)
	first.RemediationSteps[0] = "changed"

	assert.NotEqual(t, "changed", lookup(KindTimeout, ContextSource).RemediationSteps[0])
}
