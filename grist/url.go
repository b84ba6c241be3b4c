package grist

import (
	"net/url"
	"regexp"
)

var docPathPattern = regexp.MustCompile(`/doc/([^/]+)`)

type ParsedURL struct {
	DocumentID string
	APIBaseURL string
}

func (parsed ParsedURL) IsValid() bool {
	return parsed.DocumentID != "" && parsed.APIBaseURL != ""
}

// ParseURL extracts the document ID and the server base URL from a document
// URL such as https://grist.example.com/doc/abc123/p/2. Both fields are empty
// when the URL cannot be parsed or has no /doc/<id> segment.
func ParseURL(raw string) ParsedURL {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ParsedURL{}
	}

	match := docPathPattern.FindStringSubmatch(parsed.Path)
	if match == nil {
		return ParsedURL{}
	}

	return ParsedURL{
		DocumentID: match[1],
		APIBaseURL: parsed.Scheme + "://" + parsed.Host,
	}
}

func IsValidURL(raw string) bool {
	return ParseURL(raw).IsValid()
}
