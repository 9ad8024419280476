package handlers

import (
	"errors"
	"net/http"
	"time"

	"rentledger/internal/common"
	"rentledger/internal/services"

	"github.com/labstack/echo/v4"
)

// SettingsHandlers handles HTTP requests for system settings
type SettingsHandlers struct {
	settingsService services.SettingsService
}

// NewSettingsHandlers creates a new settings handlers instance
func NewSettingsHandlers(settingsService services.SettingsService) *SettingsHandlers {
	return &SettingsHandlers{
		settingsService: settingsService,
	}
}

// UpdatePenalty handles POST /api/settings/update-penalty
func (h *SettingsHandlers) UpdatePenalty(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		NewRate       *int64 `json:"newRate"`
		EffectiveFrom string `json:"effectiveFrom"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if req.NewRate == nil {
		return common.SendClientError(c, "Invalid penalty rate (must be 0-100)")
	}
	if req.EffectiveFrom == "" {
		return common.SendClientError(c, "Effective date is required")
	}

	effectiveFrom, err := common.ParseDate(req.EffectiveFrom, "effectiveFrom")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	err = h.settingsService.UpdatePenaltyRate(ctx, *req.NewRate, effectiveFrom, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPenaltyRate),
			errors.Is(err, services.ErrEffectiveDateRequired),
			errors.Is(err, services.ErrEffectiveDateNotFuture):
			return common.SendClientError(c, err.Error())
		default:
			return common.SendServerError(c, "Failed to update penalty rate")
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  200,
		"message": "Penalty rate updated successfully",
	})
}

// TenantFactorUpdate handles POST /api/settings/tenant-factor-update
func (h *SettingsHandlers) TenantFactorUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		BasicRentPercentage   *float64 `json:"basicRentPercentage"`
		PropertyTaxPercentage *float64 `json:"propertyTaxPercentage"`
		RepairCessPercentage  *float64 `json:"repaircessPercentage"`
		MiscPercentage        *float64 `json:"miscPercentage"`
		EffectiveFrom         string   `json:"effectiveFrom"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if req.BasicRentPercentage == nil || req.PropertyTaxPercentage == nil ||
		req.RepairCessPercentage == nil || req.MiscPercentage == nil ||
		req.EffectiveFrom == "" {
		return common.SendClientError(c, "Invalid input")
	}
	if *req.BasicRentPercentage < 0 || *req.PropertyTaxPercentage < 0 ||
		*req.RepairCessPercentage < 0 || *req.MiscPercentage < 0 {
		return common.SendClientError(c, "Invalid input")
	}

	effectiveFrom, err := common.ParseDate(req.EffectiveFrom, "effectiveFrom")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	updated, err := h.settingsService.BulkFactorUpdate(ctx, &services.FactorBatchInput{
		BasicRentPercentage:   *req.BasicRentPercentage,
		PropertyTaxPercentage: *req.PropertyTaxPercentage,
		RepairCessPercentage:  *req.RepairCessPercentage,
		MiscPercentage:        *req.MiscPercentage,
		EffectiveFrom:         effectiveFrom,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoFactorsToUpdate) {
			return common.SendNotFoundError(c, "Tenant rent factors")
		}
		return common.SendServerError(c, "Failed to update rent factors")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":        200,
		"message":       "Rent factors updated successfully",
		"tenantsUpdated": updated,
	})
}

// BulkRentUpdate handles POST /api/settings/bulk-rent-update
func (h *SettingsHandlers) BulkRentUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		IncrementPercentage *float64 `json:"incrementPercentage"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if req.IncrementPercentage == nil {
		return common.SendClientError(c, "Invalid increment percentage")
	}

	updated, err := h.settingsService.BulkRentIncrement(ctx, *req.IncrementPercentage)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPercentage) {
			return common.SendClientError(c, err.Error())
		}
		return common.SendServerError(c, "Failed to perform bulk rent update")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":        200,
		"message":       "Bulk rent update completed successfully",
		"tenantsUpdated": updated,
	})
}

// UpdateIncrement handles POST /api/settings/update-increment
func (h *SettingsHandlers) UpdateIncrement(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		TenantID            string   `json:"tenantId"`
		IncrementPercentage *float64 `json:"incrementPercentage"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if req.IncrementPercentage == nil {
		return common.SendClientError(c, "Invalid input for increment update")
	}

	tenantID, err := common.ValidateUUID(req.TenantID, "tenantId")
	if err != nil {
		return common.SendClientError(c, "Invalid input for increment update")
	}

	if err := h.settingsService.TenantRentIncrement(ctx, tenantID, *req.IncrementPercentage); err != nil {
		if errors.Is(err, services.ErrFactorsNotFound) {
			return common.SendNotFoundError(c, "Tenant rent factors")
		}
		return common.SendServerError(c, "Failed to update rent increment")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  200,
		"message": "Rent increment updated successfully",
	})
}

// System handles GET /api/settings/system
func (h *SettingsHandlers) System(c echo.Context) error {
	ctx := c.Request().Context()

	settings, err := h.settingsService.System(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch system settings")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": 200,
		"data":   settings,
	})
}

// PenaltyCurrent handles GET /api/settings/penalty-current
func (h *SettingsHandlers) PenaltyCurrent(c echo.Context) error {
	ctx := c.Request().Context()

	rate, err := h.settingsService.CurrentPenaltyRate(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch current penalty rate")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": 200,
		"data":   rate,
	})
}

// PenaltyHistory handles GET /api/settings/penalty-history
func (h *SettingsHandlers) PenaltyHistory(c echo.Context) error {
	ctx := c.Request().Context()

	history, err := h.settingsService.PenaltyRateHistory(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch penalty history")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": 200,
		"data":   history,
	})
}
