// Package domain holds color session types
package domain

import (
	"context"
	"time"

	"tsdash/internal/core/palette"
)

// Session is a stored color lookup
// Colors is the opaque lookup blob, exactly what MarshalLookup wrote
type Session struct {
	ID        string    `json:"id"`
	Colors    string    `json:"colors"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PutColorsInput replaces a session lookup
type PutColorsInput struct {
	Colors string `json:"colors" validate:"required"`
}

// ServicePort is the sessions service as the http layer sees it
type ServicePort interface {
	Create(ctx context.Context) (Session, error)
	Colors(ctx context.Context, id string) (Session, error)
	PutColors(ctx context.Context, id, blob string) (Session, error)
	ResetColors(ctx context.Context, id string) (Session, error)
}

// Port is how other modules read and grow a session lookup
type Port interface {
	// Load returns the stored lookup; unknown ids are NOT_FOUND
	Load(ctx context.Context, id string) (palette.Lookup, error)

	// Update locks the session row, hands its lookup to fn and stores what fn returns
	// fn must not mutate its argument
	Update(ctx context.Context, id string, fn func(palette.Lookup) (palette.Lookup, error)) (palette.Lookup, error)
}
