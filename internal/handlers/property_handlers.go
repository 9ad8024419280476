package handlers

import (
	"errors"
	"net/http"

	"rentledger/internal/common"
	"rentledger/internal/models"
	"rentledger/internal/services"

	"github.com/labstack/echo/v4"
)

// PropertyHandlers handles HTTP requests for properties
type PropertyHandlers struct {
	propertyService services.PropertyService
}

// NewPropertyHandlers creates a new property handlers instance
func NewPropertyHandlers(propertyService services.PropertyService) *PropertyHandlers {
	return &PropertyHandlers{
		propertyService: propertyService,
	}
}

// AddProperty handles POST /api/property/add
func (h *PropertyHandlers) AddProperty(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		LandlordName *string `json:"LANDLORD_NAME"`
		Name         string  `json:"PROPERTY_NAME"`
		BillName     string  `json:"PROPERTY_BILL_NAME"`
		Ward         *string `json:"WARD"`
		BlockCount   int     `json:"NUMBER_OF_BLOCKS"`
		Address      string  `json:"ADDRESS"`
		PhoneNumber  *string `json:"PHONE_NUMBER"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	property := &models.Property{
		LandlordName: req.LandlordName,
		Name:         req.Name,
		BillName:     req.BillName,
		Ward:         req.Ward,
		BlockCount:   req.BlockCount,
		Address:      req.Address,
		PhoneNumber:  req.PhoneNumber,
	}

	if err := h.propertyService.Create(ctx, property); err != nil {
		if errors.Is(err, services.ErrPropertyNameRequired) {
			return common.SendValidationError(c, "PROPERTY_NAME", err.Error())
		}
		return common.SendServerError(c, "Failed to create property")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": 200,
		"data":   map[string]interface{}{"propertyId": property.ID},
	})
}

// ListProperties handles GET /api/property/list
func (h *PropertyHandlers) ListProperties(c echo.Context) error {
	ctx := c.Request().Context()

	properties, err := h.propertyService.List(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch properties")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": 200,
		"data":   properties,
	})
}
