package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string         `json:"error"`
	Kind  apperrors.Kind `json:"kind"`
}

func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound, apperrors.KindNoAccounts:
		return http.StatusNotFound
	case apperrors.KindInvalidInput, apperrors.KindInvalidAmount, apperrors.KindInvalidKind,
		apperrors.KindInsufficientFunds, apperrors.KindInactiveAccount:
		return http.StatusBadRequest
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError maps err to a status and kind. Internal failures are logged and
// answered with failureMsg so that no infrastructure detail leaks to clients.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, failureMsg string) {
	kind := apperrors.KindOf(err)
	status := statusForKind(kind)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && status == http.StatusInternalServerError && appErr.Code >= 400 && appErr.Code < 600 {
		status = appErr.Code
	}

	if status >= http.StatusInternalServerError {
		logger.Error(failureMsg, slog.String("error", err.Error()), slog.String("kind", string(kind)))
		c.JSON(status, errorResponse{Error: failureMsg, Kind: kind})
		return
	}

	logger.Warn("Request rejected", slog.String("error", err.Error()), slog.String("kind", string(kind)))
	c.JSON(status, errorResponse{Error: err.Error(), Kind: kind})
}

// respondWithBindError answers a request whose body or query could not be bound.
func respondWithBindError(c *gin.Context, logger *slog.Logger, err error, what string) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, errorResponse{
		Error: "Invalid " + what + ": " + err.Error(),
		Kind:  apperrors.KindInvalidInput,
	})
}
