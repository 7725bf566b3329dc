package inbound

import (
	"github.com/shandysiswandi/eventex/internal/pkg/router"
	"github.com/shandysiswandi/eventex/internal/subscription/usecase"
)

// IdempotencyKeyHeader lets API clients retry a submission safely.
const IdempotencyKeyHeader = "Idempotency-Key"

type HTTPEndpoint struct {
	uc uc
}

// Create accepts a subscription as JSON.
// @Summary Create subscription
// @Description Validates and stores a subscription, then emails a confirmation to the subscriber and the organizers.
// @Tags Subscription
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays with the same key are refused"
// @Param request body SubscriptionRequest true "Subscription payload"
// @Success 201 {object} router.successResponse{data=SubscriptionCreateResponse} "Subscription created"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Idempotency key already used"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/subscriptions [post]
func (h *HTTPEndpoint) Create(r *router.Request) (any, error) {
	var req SubscriptionRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Submit(r.Context(), usecase.SubmitInput{
		Fields:         req.input(),
		IdempotencyKey: r.GetHeader(IdempotencyKeyHeader),
	})
	if err != nil {
		return nil, err
	}

	return SubscriptionCreateResponse{
		SubscriptionResponse: newSubscriptionResponse(out.Subscription),
		ConfirmationSent:     out.ConfirmationSent,
	}, nil
}

// Detail returns one subscription.
// @Summary Subscription detail
// @Tags Subscription
// @Produce json
// @Param id path int true "Subscription ID"
// @Success 200 {object} router.successResponse{data=SubscriptionResponse} "Subscription"
// @Failure 400 {object} router.errorResponse "Invalid id"
// @Failure 404 {object} router.errorResponse "Subscription not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/subscriptions/{id} [get]
func (h *HTTPEndpoint) Detail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	out, err := h.uc.Detail(r.Context(), usecase.DetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return newSubscriptionResponse(out.Subscription), nil
}
