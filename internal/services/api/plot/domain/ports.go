package domain

import (
	"context"

	"tsdash/internal/core/timewindow"
)

// ServicePort is the plot service as the http layer sees it
type ServicePort interface {
	Render(ctx context.Context, in RenderInput) (RenderOutput, error)
	Granularity(ctx context.Context, in GranularityInput) (GranularityOut, error)
	Colors(ctx context.Context, in ColorsInput) (ColorsOut, error)
	Options(ctx context.Context) Options
	Window(ctx context.Context, in WindowInput) (timewindow.Window, error)
}
