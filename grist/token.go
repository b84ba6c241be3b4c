package grist

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dnum-mi/grist-sync-plugin/types"
)

// ValidateAPIToken reads one record and reports what the HTTP status says
// about the configured token. It does not go through diagnosis.
func (client *GristClient) ValidateAPIToken(ctx context.Context) types.TokenValidation {
	req, err := client.newRequest(ctx, http.MethodGet, "records", limitQuery(1), nil)
	if err != nil {
		return types.TokenValidation{Valid: false, Message: err.Error(), NeedsAuth: false}
	}

	resp, err := client.HTTPClient.Do(req)
	if err != nil {
		return types.TokenValidation{Valid: false, Message: err.Error(), NeedsAuth: false}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return types.TokenValidation{
			Valid:     false,
			Message:   "Authentication required: the API token is missing or invalid",
			NeedsAuth: true,
		}
	case resp.StatusCode == http.StatusForbidden:
		return types.TokenValidation{
			Valid:     false,
			Message:   "Access denied: the API token does not have permission on this document",
			NeedsAuth: true,
		}
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		if client.Config.HasToken() {
			return types.TokenValidation{Valid: true, Message: "API token is valid", NeedsAuth: true}
		}
		return types.TokenValidation{Valid: true, Message: "Document is publicly accessible, no token needed", NeedsAuth: false}
	default:
		return types.TokenValidation{
			Valid:     false,
			Message:   fmt.Sprintf("Unexpected HTTP status %d", resp.StatusCode),
			NeedsAuth: false,
		}
	}
}
