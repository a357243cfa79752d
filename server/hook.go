package server

import (
	"context"

	"github.com/DrmagicE/gcolor"
)

type Hooks struct {
	OnColorSet
	OnRandomized
	OnStop
}

// OnColorSet will be called after a color is stored. old is the color the cell held before.
type OnColorSet func(ctx context.Context, cell Cell, old, new gcolor.Color)

type OnColorSetWrapper func(OnColorSet) OnColorSet

// OnRandomized will be called after the whole store is refilled with random codes.
type OnRandomized func(ctx context.Context, seed int64)

type OnRandomizedWrapper func(OnRandomized) OnRandomized

// OnStop will be called on server.Stop()
type OnStop func(ctx context.Context)

type OnStopWrapper func(OnStop) OnStop
