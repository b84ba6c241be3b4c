package diagnosis

type entry struct {
	title       string
	message     string
	explanation string
	steps       []string
}

var sourceCatalogue = map[Kind]entry{
	KindCrossOrigin: {
		title:       "Cross-origin request blocked",
		message:     "The source API refused a cross-origin request.",
		explanation: "The source API did not allow this origin to read its responses (CORS). The same error is also raised when the API cannot be reached at all, so check both.",
		steps: []string{
			"Ask the API owner to allow this origin in the Access-Control-Allow-Origin header.",
			"Check that the API URL is correct and that the server is up.",
			"Call the API through a proxy that adds the CORS headers.",
		},
	},
	KindNetwork: {
		title:       "Source API unreachable",
		message:     "The source API could not be reached.",
		explanation: "No response was received from the source API. The host may be down, the address may be wrong or the network may be unavailable.",
		steps: []string{
			"Check the API URL (scheme, host and port).",
			"Check your network connection and any VPN or proxy settings.",
			"Try the URL with curl or a browser to confirm the server responds.",
		},
	},
	KindUnauthorized: {
		title:       "Authentication required",
		message:     "The source API rejected the request as unauthenticated (401).",
		explanation: "The API expects credentials and none were sent, or the ones sent are invalid or expired.",
		steps: []string{
			"Check the API key and the name of the header it is sent in.",
			"Generate a new key if the current one has expired.",
			"Confirm whether the API expects a Bearer prefix.",
		},
	},
	KindForbidden: {
		title:       "Access denied",
		message:     "The source API refused access to this resource (403).",
		explanation: "The credentials were accepted but they do not grant access to the requested endpoint.",
		steps: []string{
			"Ask the API owner to grant your key access to this endpoint.",
			"Check that you are using the key for the right account or environment.",
		},
	},
	KindNotFound: {
		title:       "Endpoint not found",
		message:     "The source API endpoint does not exist (404).",
		explanation: "The server answered but has nothing at this path.",
		steps: []string{
			"Check the endpoint path and query parameters in the API documentation.",
			"Check the API version segment of the URL.",
		},
	},
	KindUnprocessable: {
		title:       "Request rejected",
		message:     "The source API could not process the request (422).",
		explanation: "The server understood the request but rejected its parameters.",
		steps: []string{
			"Check the query parameters against the API documentation.",
			"Remove optional filters and try again.",
		},
	},
	KindServerError: {
		title:       "Source API error",
		message:     "The source API failed while handling the request (5xx).",
		explanation: "The problem is on the server side and is usually temporary.",
		steps: []string{
			"Wait a few minutes and try again.",
			"Check the API status page or contact its maintainers.",
		},
	},
	KindMalformedResponse: {
		title:       "Unreadable response",
		message:     "The source API returned a response that is not valid JSON.",
		explanation: "The body could not be parsed. The endpoint may return HTML, CSV or an error page instead of JSON.",
		steps: []string{
			"Open the URL directly and check that it returns JSON.",
			"Check that the endpoint is the JSON variant of the API (for example a /api/ prefix or format=json).",
		},
	},
	KindTimeout: {
		title:       "Request timed out",
		message:     "The source API took too long to answer.",
		explanation: "The request was sent but no complete response arrived in time.",
		steps: []string{
			"Try again; the server may be under load.",
			"Reduce the amount of data requested with pagination or filters.",
		},
	},
	KindUnknownHTTP: {
		title:       "Unexpected HTTP status",
		message:     "The source API answered with an unexpected HTTP status.",
		explanation: "The status code is not one this tool knows how to explain.",
		steps: []string{
			"Look up the status code in the API documentation.",
			"Check the technical details for the response body.",
		},
	},
	KindUnknown: {
		title:       "Unexpected error",
		message:     "An unexpected error occurred while fetching data from the source API.",
		explanation: "The error did not match any known failure.",
		steps: []string{
			"Try again.",
			"Report the technical details below to the maintainers.",
		},
	},
}

var destinationCatalogue = map[Kind]entry{
	KindCrossOrigin: {
		title:       "Cross-origin request blocked",
		message:     "The Grist server refused a cross-origin request.",
		explanation: "The Grist instance did not allow this origin (CORS). The same error is also raised when the instance cannot be reached at all.",
		steps: []string{
			"Check the Grist server URL.",
			"Ask the Grist administrator to allow this origin.",
		},
	},
	KindNetwork: {
		title:       "Grist unreachable",
		message:     "The Grist server could not be reached.",
		explanation: "No response was received from the Grist instance.",
		steps: []string{
			"Check the Grist server URL.",
			"Check your network connection and any VPN or proxy settings.",
		},
	},
	KindUnauthorized: {
		title:       "Grist authentication required",
		message:     "Grist rejected the request as unauthenticated (401).",
		explanation: "The document is not public and no valid API key was sent.",
		steps: []string{
			"Set the Grist API key (Profile settings > API Key).",
			"Generate a new API key if the current one was revoked.",
		},
	},
	KindForbidden: {
		title:       "Grist access denied",
		message:     "Grist refused access to this document (403).",
		explanation: "The API key is valid but its owner may not edit this document.",
		steps: []string{
			"Ask the document owner to give you editor access.",
			"Check that the API key belongs to the right Grist account.",
		},
	},
	KindNotFound: {
		title:       "Grist document or table not found",
		message:     "The Grist document or table does not exist (404).",
		explanation: "Grist answered but could not find the document ID or table ID in the request.",
		steps: []string{
			"Check the document ID and the table ID (table IDs are case-sensitive).",
			"Check that the document has not been moved or deleted.",
		},
	},
	KindUnprocessable: {
		title:       "Records rejected by Grist",
		message:     "Grist rejected the records (422).",
		explanation: "Some fields do not match the table: a column is missing or a value does not fit its type.",
		steps: []string{
			"Check that every mapped destination column exists in the table.",
			"Enable automatic column creation or create the columns by hand.",
			"Check the column types against the mapped values.",
		},
	},
	KindServerError: {
		title:       "Grist server error",
		message:     "The Grist server failed while handling the request (5xx).",
		explanation: "The problem is on the Grist side and is usually temporary.",
		steps: []string{
			"Wait a few minutes and try again.",
			"Contact the Grist administrator if the problem persists.",
		},
	},
	KindMalformedResponse: {
		title:       "Unreadable Grist response",
		message:     "Grist returned a response that is not valid JSON.",
		explanation: "The body could not be parsed; the URL may point to a web page rather than the Grist API.",
		steps: []string{
			"Check that the server URL is the Grist root URL, without /doc/ or /api/ suffix.",
		},
	},
	KindTimeout: {
		title:       "Grist request timed out",
		message:     "Grist took too long to answer.",
		explanation: "The request was sent but no complete response arrived in time.",
		steps: []string{
			"Try again with fewer records.",
			"Check the Grist server load.",
		},
	},
	KindUnknownHTTP: {
		title:       "Unexpected Grist status",
		message:     "Grist answered with an unexpected HTTP status.",
		explanation: "The status code is not one this tool knows how to explain.",
		steps: []string{
			"Check the technical details for the response body.",
			"Report the problem to the Grist administrator.",
		},
	},
	KindUnknown: {
		title:       "Unexpected error",
		message:     "An unexpected error occurred while sending data to Grist.",
		explanation: "The error did not match any known failure.",
		steps: []string{
			"Try again.",
			"Report the technical details below to the maintainers.",
		},
	},
}

func lookup(kind Kind, context Context) Diagnosis {
	catalogue := sourceCatalogue
	if context == ContextDestination {
		catalogue = destinationCatalogue
	}

	e := catalogue[kind]
	return Diagnosis{
		Kind:             kind,
		Title:            e.title,
		Message:          e.message,
		Explanation:      e.explanation,
		RemediationSteps: append([]string(nil), e.steps...),
	}
}
