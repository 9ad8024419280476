package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"rentledger/internal/common"
	"rentledger/internal/models"
	"rentledger/internal/repositories"
	"rentledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TenantHandlers handles HTTP requests for tenants
type TenantHandlers struct {
	tenantService services.TenantService
}

// NewTenantHandlers creates a new tenant handlers instance
func NewTenantHandlers(tenantService services.TenantService) *TenantHandlers {
	return &TenantHandlers{
		tenantService: tenantService,
	}
}

type tenantBody struct {
	Name           *string `json:"TENANT_NAME"`
	PropertyID     *string `json:"PROPERTY_ID"`
	Salutation     *string `json:"SALUTATION"`
	BuildingFloor  *string `json:"BUILDING_FLOOR"`
	PropertyType   *string `json:"PROPERTY_TYPE"`
	PropertyNumber *string `json:"PROPERTY_NUMBER"`
	MobileNumber   *string `json:"TENANT_MOBILE_NUMBER"`
	Notes          *string `json:"NOTES"`
	TenancyDate    *string `json:"TENANCY_DATE"`
	TenancyEndDate *string `json:"TENANCY_END_DATE"`
	IsActive       *bool   `json:"IS_ACTIVE"`
}

type rentFactorsBody struct {
	BasicRent   *int64 `json:"BASIC_RENT"`
	PropertyTax *int64 `json:"PROPERTY_TAX"`
	RepairCess  *int64 `json:"REPAIR_CESS"`
	Misc        *int64 `json:"MISC"`
}

// AddTenant handles POST /api/tenant/add
func (h *TenantHandlers) AddTenant(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Tenant      tenantBody      `json:"tenant"`
		RentFactors rentFactorsBody `json:"rentFactors"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if req.Tenant.Name == nil || req.Tenant.PropertyID == nil {
		return common.SendClientError(c, "Required fields are missing")
	}

	propertyID, err := common.ValidateUUID(*req.Tenant.PropertyID, "PROPERTY_ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	tenant := &models.Tenant{
		PropertyID:     &propertyID,
		Name:           *req.Tenant.Name,
		Salutation:     req.Tenant.Salutation,
		BuildingFloor:  req.Tenant.BuildingFloor,
		PropertyType:   req.Tenant.PropertyType,
		PropertyNumber: req.Tenant.PropertyNumber,
		MobileNumber:   req.Tenant.MobileNumber,
		Notes:          req.Tenant.Notes,
		IsActive:       true,
	}

	if req.Tenant.IsActive != nil {
		tenant.IsActive = *req.Tenant.IsActive
	}

	if req.Tenant.TenancyDate != nil && *req.Tenant.TenancyDate != "" {
		tenancyDate, err := common.ParseDate(*req.Tenant.TenancyDate, "TENANCY_DATE")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		tenant.TenancyDate = &tenancyDate
	}

	if req.Tenant.TenancyEndDate != nil && *req.Tenant.TenancyEndDate != "" {
		endDate, err := common.ParseDate(*req.Tenant.TenancyEndDate, "TENANCY_END_DATE")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		tenant.TenancyEndDate = &endDate
	}

	factors := &models.RentFactors{}
	if req.RentFactors.BasicRent != nil {
		factors.BasicRent = *req.RentFactors.BasicRent
	}
	if req.RentFactors.PropertyTax != nil {
		factors.PropertyTax = *req.RentFactors.PropertyTax
	}
	if req.RentFactors.RepairCess != nil {
		factors.RepairCess = *req.RentFactors.RepairCess
	}
	if req.RentFactors.Misc != nil {
		factors.Misc = *req.RentFactors.Misc
	}

	tenantID, err := h.tenantService.AddTenant(ctx, &services.AddTenantInput{
		Tenant:      tenant,
		RentFactors: factors,
	})
	if err != nil {
		if errors.Is(err, services.ErrTenantRequiredFields) {
			return common.SendClientError(c, "Required fields are missing")
		}
		return common.SendServerError(c, "Failed to create tenant")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": 200,
		"data":   map[string]interface{}{"tenantId": tenantID},
	})
}

// UpdateTenant handles POST /api/tenant/update
func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		TenantID    string          `json:"tenantId"`
		Tenant      tenantBody      `json:"tenant"`
		RentFactors rentFactorsBody `json:"rentFactors"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	tenantID, err := common.ValidateUUID(req.TenantID, "tenantId")
	if err != nil {
		return common.SendClientError(c, "tenantId is required")
	}

	input := &services.UpdateTenantInput{
		TenantID:       tenantID,
		Name:           req.Tenant.Name,
		Salutation:     req.Tenant.Salutation,
		BuildingFloor:  req.Tenant.BuildingFloor,
		PropertyType:   req.Tenant.PropertyType,
		PropertyNumber: req.Tenant.PropertyNumber,
		MobileNumber:   req.Tenant.MobileNumber,
		Notes:          req.Tenant.Notes,
		IsActive:       req.Tenant.IsActive,
		BasicRent:      req.RentFactors.BasicRent,
		PropertyTax:    req.RentFactors.PropertyTax,
		RepairCess:     req.RentFactors.RepairCess,
		Misc:           req.RentFactors.Misc,
	}

	if req.Tenant.PropertyID != nil && *req.Tenant.PropertyID != "" {
		propertyID, err := common.ValidateUUID(*req.Tenant.PropertyID, "PROPERTY_ID")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		input.PropertyID = &propertyID
	}

	if req.Tenant.TenancyDate != nil && *req.Tenant.TenancyDate != "" {
		tenancyDate, err := common.ParseDate(*req.Tenant.TenancyDate, "TENANCY_DATE")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		input.TenancyDate = &tenancyDate
	}

	if req.Tenant.TenancyEndDate != nil && *req.Tenant.TenancyEndDate != "" {
		endDate, err := common.ParseDate(*req.Tenant.TenancyEndDate, "TENANCY_END_DATE")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		input.TenancyEndDate = &endDate
	}

	if err := h.tenantService.UpdateTenant(ctx, input); err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return common.SendNotFoundError(c, "Tenant")
		}
		return common.SendServerError(c, "Failed to update tenant")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  200,
		"message": "Tenant updated successfully",
	})
}

// TenantDetail handles GET /api/tenant/detail/:id
func (h *TenantHandlers) TenantDetail(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	detail, err := h.tenantService.Detail(ctx, tenantID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return common.SendNotFoundError(c, "Tenant")
		}
		return common.SendServerError(c, "Failed to fetch tenant detail")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": 200,
		"data":   detail,
	})
}

// ListTenants handles GET /api/tenant/list
func (h *TenantHandlers) ListTenants(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	limit, _ = common.ValidatePaginationParams(limit, 0)

	filter := repositories.TenantListFilter{
		Status: c.QueryParam("status"),
		Search: common.SanitizeSearchQuery(c.QueryParam("search")),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	if propertyIDStr := c.QueryParam("propertyId"); propertyIDStr != "" {
		propertyID, err := uuid.Parse(propertyIDStr)
		if err != nil {
			return common.SendClientError(c, "propertyId is not a valid UUID")
		}
		filter.PropertyID = &propertyID
	}

	tenants, total, err := h.tenantService.List(ctx, filter)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch tenants")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": 200,
		"data":   tenants,
		"total":  total,
	})
}
