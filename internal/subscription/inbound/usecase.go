package inbound

import (
	"context"

	"github.com/shandysiswandi/eventex/internal/subscription/usecase"
)

type uc interface {
	Submit(ctx context.Context, in usecase.SubmitInput) (*usecase.SubmitOutput, error)
	Detail(ctx context.Context, in usecase.DetailInput) (*usecase.DetailOutput, error)
}
