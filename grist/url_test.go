package grist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseURL(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected ParsedURL
	}{
		{
			name:     "document url",
			raw:      "https://grist.numerique.gouv.fr/doc/abc123",
			expected: ParsedURL{DocumentID: "abc123", APIBaseURL: "https://grist.numerique.gouv.fr"},
		},
		{
			name:     "page url with port",
			raw:      "http://localhost:8484/doc/xyz/p/2?foo=bar",
			expected: ParsedURL{DocumentID: "xyz", APIBaseURL: "http://localhost:8484"},
		},
		{name: "no doc segment", raw: "https://grist.example.com/o/docs/abc", expected: ParsedURL{}},
		{name: "empty doc segment", raw: "https://grist.example.com/doc/", expected: ParsedURL{}},
		{name: "no scheme", raw: "grist.example.com/doc/abc", expected: ParsedURL{}},
		{name: "unparseable", raw: "://bad url", expected: ParsedURL{}},
		{name: "empty", raw: "", expected: ParsedURL{}},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, ParseURL(test.raw))
			assert.Equal(t, test.expected.IsValid(), IsValidURL(test.raw))
		})
	}
}
