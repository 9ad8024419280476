package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"rentledger/internal/common"
	"rentledger/internal/models"
	"rentledger/internal/services"

	"github.com/labstack/echo/v4"
)

// TransactionHandlers handles HTTP requests for payment transactions
type TransactionHandlers struct {
	paymentService services.PaymentService
}

// NewTransactionHandlers creates a new transaction handlers instance
func NewTransactionHandlers(paymentService services.PaymentService) *TransactionHandlers {
	return &TransactionHandlers{
		paymentService: paymentService,
	}
}

// AddTransaction handles POST /api/transaction/add
func (h *TransactionHandlers) AddTransaction(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		TenantID             string  `json:"TENANT_ID"`
		RentMonth            *string `json:"RENT_MONTH"`
		ReceivedAmount       int64   `json:"RECEIVED_AMOUNT"`
		RentAllocated        int64   `json:"RENT_ALLOCATED"`
		OutstandingAllocated int64   `json:"OUTSTANDING_ALLOCATED"`
		PenaltyAllocated     int64   `json:"PENALTY_ALLOCATED"`
		IsPenaltyWaived      bool    `json:"IS_PENALTY_WAIVED"`
		PaymentMethod        int     `json:"PAYMENT_METHOD"`
		PaymentDate          string  `json:"PAYMENT_DATE"`
		ChequeNumber         *string `json:"CHEQUE_NUMBER"`
		ChequeDate           *string `json:"CHEQUE_DATE"`
		BankName             *string `json:"BANK_NAME"`
		BankBranch           *string `json:"BANK_BRANCH"`
		TransactionID        *string `json:"TRANSACTION_ID"`
		PaymentGateway       *string `json:"PAYMENT_GATEWAY"`
		Notes                *string `json:"NOTES"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	tenantID, err := common.ValidateUUID(req.TenantID, "TENANT_ID")
	if err != nil {
		return common.SendClientError(c, "Missing required fields")
	}

	if req.PaymentDate == "" {
		return common.SendClientError(c, "Missing required fields")
	}
	paymentDate, err := common.ParseDate(req.PaymentDate, "PAYMENT_DATE")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	input := &services.AddPaymentInput{
		TenantID:             tenantID,
		ReceivedAmount:       req.ReceivedAmount,
		RentAllocated:        req.RentAllocated,
		OutstandingAllocated: req.OutstandingAllocated,
		PenaltyAllocated:     req.PenaltyAllocated,
		IsPenaltyWaived:      req.IsPenaltyWaived,
		PaymentMethod:        req.PaymentMethod,
		PaymentDate:          paymentDate,
		ChequeNumber:         req.ChequeNumber,
		BankName:             req.BankName,
		BankBranch:           req.BankBranch,
		TransactionID:        req.TransactionID,
		PaymentGateway:       req.PaymentGateway,
		Notes:                req.Notes,
	}

	if req.RentMonth != nil && *req.RentMonth != "" {
		rentMonth, err := common.ParseDate(*req.RentMonth, "RENT_MONTH")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		input.RentMonth = &rentMonth
	}

	if req.ChequeDate != nil && *req.ChequeDate != "" {
		chequeDate, err := common.ParseDate(*req.ChequeDate, "CHEQUE_DATE")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		input.ChequeDate = &chequeDate
	}

	paymentID, err := h.paymentService.AddPayment(ctx, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingRequiredFields),
			errors.Is(err, services.ErrChequeDetailsRequired),
			errors.Is(err, services.ErrTransactionIDRequired),
			errors.Is(err, services.ErrAllocationExceedsReceived):
			return common.SendClientError(c, err.Error())
		default:
			return common.SendServerError(c, "Failed to record payment")
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": 200,
		"data":   map[string]interface{}{"paymentId": paymentID},
	})
}

// DeleteTransaction handles DELETE /api/transaction/delete/:transactionId
func (h *TransactionHandlers) DeleteTransaction(c echo.Context) error {
	ctx := c.Request().Context()

	transactionID, err := common.ValidateUUID(c.Param("transactionId"), "transactionId")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.paymentService.DeletePayment(ctx, transactionID); err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			return common.SendNotFoundError(c, "Transaction")
		}
		return common.SendServerError(c, "Failed to delete transaction")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  200,
		"message": "Transaction deleted and allocations reversed",
	})
}

// ListTransactions handles GET /api/transaction/list
func (h *TransactionHandlers) ListTransactions(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	limit, _ = common.ValidatePaginationParams(limit, 0)

	filter := models.PaymentListFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
		Search: common.SanitizeSearchQuery(c.QueryParam("search")),
	}

	if tenantIDStr := c.QueryParam("tenantId"); tenantIDStr != "" {
		tenantID, err := common.ValidateUUID(tenantIDStr, "tenantId")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		filter.TenantID = &tenantID
	}

	if dateFrom := c.QueryParam("dateFrom"); dateFrom != "" {
		from, err := common.ParseDate(dateFrom, "dateFrom")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		filter.DateFrom = &from
	}

	if dateTo := c.QueryParam("dateTo"); dateTo != "" {
		to, err := common.ParseDate(dateTo, "dateTo")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		filter.DateTo = &to
	}

	if methodStr := c.QueryParam("method"); methodStr != "" {
		method, err := strconv.Atoi(methodStr)
		if err != nil {
			return common.SendClientError(c, "method must be a number")
		}
		filter.Method = &method
	}

	rows, total, err := h.paymentService.List(ctx, filter)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch transactions")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    200,
		"transData": rows,
		"total":     total,
	})
}

// UnpaidBalances handles GET /api/transaction/unpaid
func (h *TransactionHandlers) UnpaidBalances(c echo.Context) error {
	ctx := c.Request().Context()

	unpaid, err := h.paymentService.UnpaidBalances(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch unpaid balances")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     200,
		"unpaidData": unpaid,
	})
}

// Summary handles GET /api/transaction/summary
func (h *TransactionHandlers) Summary(c echo.Context) error {
	ctx := c.Request().Context()

	summary, err := h.paymentService.Summary(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch summary")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      200,
		"summaryData": summary,
	})
}
