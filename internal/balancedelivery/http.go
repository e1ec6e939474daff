// Package balancedelivery manages delivery layer of point balances.
package balancedelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/point-bank/internal/domain"
	"github.com/go-petr/point-bank/pkg/errorspkg"
	"github.com/go-petr/point-bank/pkg/web"
)

// Service provides service layer interface needed by balance delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package balancedelivery
type Service interface {
	Get(ctx context.Context, userID int64) (domain.Balance, error)
	Charge(ctx context.Context, userID, amount int64) (domain.Balance, error)
	Deduct(ctx context.Context, userID, amount int64) (domain.Balance, error)
}

// Handler facilitates balance delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns balance handler.
func NewHandler(bs Service) Handler {
	return Handler{service: bs}
}

type uriRequest struct {
	UserID int64 `uri:"id" binding:"required,min=1"`
}

type amountRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

type data struct {
	Balance domain.Balance `json:"balance"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

// Get handles http request to read a balance.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	balance, err := h.service.Get(ctx, req.UserID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{balance}})
}

// Charge handles http request to add points to a balance.
func (h *Handler) Charge(gctx *gin.Context) {
	h.mutate(gctx, h.service.Charge)
}

// Deduct handles http request to spend points from a balance.
func (h *Handler) Deduct(gctx *gin.Context) {
	h.mutate(gctx, h.service.Deduct)
}

// mutate binds the shared charge/deduct request shape, invokes op and maps
// the service's error kinds to status codes.
func (h *Handler) mutate(gctx *gin.Context, op func(ctx context.Context, userID, amount int64) (domain.Balance, error)) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	balance, err := op(ctx, uri.UserID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPointOverflow),
			errors.Is(err, domain.ErrInsufficientPoints):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		case errors.Is(err, context.DeadlineExceeded),
			errors.Is(err, context.Canceled):
			gctx.JSON(http.StatusRequestTimeout, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{balance}})
}
