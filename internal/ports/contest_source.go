package ports

import (
	"context"
	"encoding/json"
)

// ContestSource exposes the third-party contest API. Responses pass
// through untouched; the server is a plain relay.
type ContestSource interface {
	// Contests returns the upstream contest list payload.
	Contests(ctx context.Context) (json.RawMessage, error)

	// UserInfo returns the upstream profile payload for one handle.
	UserInfo(ctx context.Context, handle string) (json.RawMessage, error)
}
