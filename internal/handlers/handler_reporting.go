package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finbook/ledger-service/internal/apperrors"
	portssvc "github.com/finbook/ledger-service/internal/core/ports/services"
	"github.com/finbook/ledger-service/internal/dto"
	"github.com/finbook/ledger-service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for derived views: batched balances
// and statements.
type reportingHandler struct {
	balanceService   portssvc.BalanceSvcFacade
	statementService portssvc.StatementSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(bs portssvc.BalanceSvcFacade, ss portssvc.StatementSvcFacade) *reportingHandler {
	return &reportingHandler{
		balanceService:   bs,
		statementService: ss,
	}
}

// registerReportingRoutes registers routes for balances and statements.
func registerReportingRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade, statementService portssvc.StatementSvcFacade) {
	h := newReportingHandler(balanceService, statementService)

	rg.POST("/balances/query", h.getBalances)
	rg.GET("/accounts/:id/statement", h.getStatement)
}

// getBalances godoc
// @Summary Get balances for several accounts
// @Description Returns displayed balances for a set of accounts as of a date (today when omitted)
// @Tags reporting
// @Accept  json
// @Produce  json
// @Param   query body dto.GetBalancesRequest true "Accounts and optional as-of date"
// @Success 200 {object} dto.GetBalancesResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "An account was not found"
// @Failure 500 {object} map[string]string "Failed to derive balances"
// @Security BearerAuth
// @Router /balances/query [post]
func (h *reportingHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GetBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GetBalances", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("tenant_id", tenantID))

	balances, err := h.balanceService.GetBalances(c.Request.Context(), tenantID, req.AccountIDs, req.AsOf)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Account not found for balance query", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error on balance query", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to derive balances", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive balances"})
		}
		return
	}

	resp := dto.GetBalancesResponse{Balances: make([]dto.BalanceResponse, len(balances))}
	for i := range balances {
		resp.Balances[i] = dto.ToBalanceResponse(&balances[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getStatement godoc
// @Summary Get an account statement
// @Description Returns the account's entries between two dates with opening, running and closing raw balances
// @Tags reporting
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   startDate query string true "Start date (YYYY-MM-DD)"
// @Param   endDate query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid query parameters or date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to generate statement"
// @Security BearerAuth
// @Router /accounts/{id}/statement [get]
func (h *reportingHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.GetStatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for GetStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("tenant_id", tenantID), slog.String("account_id", accountID))

	statement, err := h.statementService.GetStatement(c.Request.Context(), tenantID, accountID, params.StartDate, params.EndDate)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Account not found for statement")
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error on statement query", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to generate statement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate statement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}
