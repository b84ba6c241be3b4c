package diagnosis

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var httpStatusPattern = regexp.MustCompile(`HTTP (\d{3})`)

var (
	crossOriginMarkers = []string{"cors", "cross-origin", "access-control-allow-origin"}
	fetchFailedMarkers = []string{"failed to fetch", "network request failed"}
	networkMarkers     = []string{"network", "connection", "refused", "offline"}
	malformedMarkers   = []string{"json", "parse"}
)

// Classify inspects err and returns the matching diagnosis for context.
//
// Detection order matters and the first match wins: cross-origin, network,
// HTTP status, malformed response, timeout, unknown. A generic fetch failure
// carries no signal telling a blocked cross-origin request apart from an
// unreachable host; it is reported as cross-origin, which is a heuristic.
func Classify(err error, context Context) Diagnosis {
	message := ""
	if err != nil {
		message = err.Error()
	}

	// The request URL in a *url.Error must not drive detection.
	detectable := message
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		detectable = urlErr.Err.Error()
	}

	kind := detectKind(err, strings.ToLower(detectable), detectable)

	diagnosis := lookup(kind, context)
	diagnosis.TechnicalDetail = message
	return diagnosis
}

func detectKind(err error, lower string, message string) Kind {
	fetchFailed := containsAny(lower, fetchFailedMarkers)

	if containsAny(lower, crossOriginMarkers) || fetchFailed {
		return KindCrossOrigin
	}

	if containsAny(lower, networkMarkers) || isDialError(err) {
		return KindNetwork
	}

	if code, ok := httpStatusCode(err, message); ok {
		return kindForStatus(code)
	}

	if containsAny(lower, malformedMarkers) || isDecodeError(err) {
		return KindMalformedResponse
	}

	if strings.Contains(lower, "timeout") || isTimeout(err) {
		return KindTimeout
	}

	return KindUnknown
}

func kindForStatus(code int) Kind {
	switch code {
	case 401:
		return KindUnauthorized
	case 403:
		return KindForbidden
	case 404:
		return KindNotFound
	case 422:
		return KindUnprocessable
	case 500, 502, 503, 504:
		return KindServerError
	default:
		return KindUnknownHTTP
	}
}

func httpStatusCode(err error, message string) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}

	match := httpStatusPattern.FindStringSubmatch(message)
	if match == nil {
		return 0, false
	}
	code, convErr := strconv.Atoi(match[1])
	if convErr != nil {
		return 0, false
	}
	return code, true
}

func isDialError(err error) bool {
	if err == nil {
		return false
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return !dnsErr.IsTimeout
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial" && !opErr.Timeout()
	}
	return false
}

func isDecodeError(err error) bool {
	if err == nil {
		return false
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
