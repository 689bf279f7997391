package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/dto"
	"github.com/SscSPs/account_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type movementHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newMovementHandler(ls portssvc.LedgerSvcFacade) *movementHandler {
	return &movementHandler{ledgerService: ls}
}

// RegisterMovementRoutes registers the ledger posting and movement routes.
func RegisterMovementRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	registerValidators()
	h := newMovementHandler(ledgerService)

	movements := rg.Group("/movements")
	{
		movements.POST("", h.postMovement)
		movements.GET("", h.listMovements)
		movements.GET("/:movementID", h.getMovement)
		movements.PUT("/:movementID", h.updateMovement)
		movements.DELETE("/:movementID", h.deleteMovement)
		movements.GET("/account/:accountID", h.listMovementsByAccount)
	}
}

// postMovement godoc
// @Summary Post a movement
// @Description Debits or credits an account. Debits that would make the balance negative are rejected.
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   movement body dto.CreateMovementRequest true "Movement details"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} map[string]string "Invalid amount or kind, insufficient funds, or inactive account"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to post movement"
// @Router /movements [post]
func (h *movementHandler) postMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err, "request format")
		return
	}

	kind, err := domain.ParseMovementKind(req.Kind)
	if err != nil {
		respondWithError(c, logger, err, "Failed to post movement")
		return
	}

	logger = logger.With(slog.String("account_id", req.AccountID))
	movement, err := h.ledgerService.PostMovement(c.Request.Context(), req.AccountID, kind, req.Amount)
	if err != nil {
		respondWithError(c, logger, err, "Failed to post movement")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

// getMovement godoc
// @Summary Get a movement by ID
// @Tags movements
// @Produce  json
// @Param   movementID path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 404 {object} map[string]string "Movement not found"
// @Router /movements/{movementID} [get]
func (h *movementHandler) getMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	movement, err := h.ledgerService.GetMovementByID(c.Request.Context(), c.Param("movementID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// listMovements godoc
// @Summary List all movements, newest first
// @Tags movements
// @Produce  json
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListMovementsResponse
// @Router /movements [get]
func (h *movementHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, logger, err, "query parameters")
		return
	}

	movements, err := h.ledgerService.ListMovements(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list movements")
		return
	}
	c.JSON(http.StatusOK, dto.ListMovementsResponse{Movements: dto.ToListMovementResponse(movements)})
}

// listMovementsByAccount godoc
// @Summary List an account's movements
// @Description Token paginated, newest first. Pass nextToken from the previous page to continue.
// @Tags movements
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 400 {object} map[string]string "Invalid token or parameters"
// @Router /movements/account/{accountID} [get]
func (h *movementHandler) listMovementsByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.AccountMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, logger, err, "query parameters")
		return
	}

	resp, err := h.ledgerService.ListMovementsByAccount(c.Request.Context(), accountID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list movements")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateMovement godoc
// @Summary Correct a stored movement
// @Description Administrative correction. The account balance is not adjusted.
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   movementID path string true "Movement ID"
// @Param   movement body dto.UpdateMovementRequest true "Fields to correct"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Movement not found"
// @Router /movements/{movementID} [put]
func (h *movementHandler) updateMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err, "request format")
		return
	}

	movement, err := h.ledgerService.UpdateMovement(c.Request.Context(), c.Param("movementID"), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// deleteMovement godoc
// @Summary Delete a stored movement
// @Description Administrative removal. The account balance is not adjusted.
// @Tags movements
// @Param   movementID path string true "Movement ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Movement not found"
// @Router /movements/{movementID} [delete]
func (h *movementHandler) deleteMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.ledgerService.DeleteMovement(c.Request.Context(), c.Param("movementID")); err != nil {
		respondWithError(c, logger, err, "Failed to delete movement")
		return
	}
	c.Status(http.StatusNoContent)
}
