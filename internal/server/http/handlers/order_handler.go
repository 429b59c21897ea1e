package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/zervix/marketplace/internal/domain/errors"
	"github.com/zervix/marketplace/internal/domain/model"
	"github.com/zervix/marketplace/internal/server/http/dto"
)

// OrderHandler manages order lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), userID, req.GigID, req.TierName, req.Requirements)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.facade.Orders(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	detail, err := h.facade.Order(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	userID := CurrentUserID(c)
	if detail.Order.BuyerID != userID && detail.Order.SellerID != userID {
		c.Status(http.StatusForbidden)
		return
	}

	c.JSON(http.StatusOK, toOrderDetailResponse(detail))
}

// Transition handles PATCH /api/orders/:id/status.
func (h *OrderHandler) Transition(c *gin.Context) {
	orderID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.TransitionOrder(c.Request.Context(), orderID, model.OrderStatus(req.Status), CurrentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrInvalidTransition), errors.Is(err, domainErrors.ErrConflict):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// SubmitDelivery handles POST /api/orders/:id/deliveries.
func (h *OrderHandler) SubmitDelivery(c *gin.Context) {
	orderID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.DeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	delivery, err := h.facade.SubmitDelivery(c.Request.Context(), orderID, CurrentUserID(c), req.Files, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrInvalidTransition), errors.Is(err, domainErrors.ErrConflict):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toDeliveryResponse(*delivery))
}

// RequestRevision handles POST /api/orders/:id/revisions.
func (h *OrderHandler) RequestRevision(c *gin.Context) {
	orderID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.RevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	revision, err := h.facade.RequestRevision(c.Request.Context(), orderID, CurrentUserID(c), req.Request)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrInvalidTransition), errors.Is(err, domainErrors.ErrConflict):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toRevisionResponse(*revision))
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:           order.ID,
		BuyerID:      order.BuyerID,
		SellerID:     order.SellerID,
		GigID:        order.GigID,
		TierName:     order.TierName,
		Status:       string(order.Status),
		TotalCents:   order.TotalCents,
		Requirements: order.Requirements,
		CreatedAt:    order.CreatedAt,
		CompletedAt:  order.CompletedAt,
	}
}

func toDeliveryResponse(d model.Delivery) dto.DeliveryResponse {
	return dto.DeliveryResponse{ID: d.ID, Files: d.Files, Note: d.Note, CreatedAt: d.CreatedAt}
}

func toRevisionResponse(r model.Revision) dto.RevisionResponse {
	return dto.RevisionResponse{ID: r.ID, Request: r.Request, CreatedAt: r.CreatedAt}
}

func toOrderDetailResponse(detail *model.OrderDetail) dto.OrderDetailResponse {
	resp := dto.OrderDetailResponse{
		OrderResponse: toOrderResponse(detail.Order),
		Deliveries:    make([]dto.DeliveryResponse, 0, len(detail.Deliveries)),
		Revisions:     make([]dto.RevisionResponse, 0, len(detail.Revisions)),
		Activity:      make([]dto.ActivityResponse, 0, len(detail.Activity)),
	}
	for _, d := range detail.Deliveries {
		resp.Deliveries = append(resp.Deliveries, toDeliveryResponse(d))
	}
	for _, r := range detail.Revisions {
		resp.Revisions = append(resp.Revisions, toRevisionResponse(r))
	}
	for _, e := range detail.Activity {
		resp.Activity = append(resp.Activity, dto.ActivityResponse{Type: string(e.Type), Message: e.Message, CreatedAt: e.CreatedAt})
	}
	return resp
}
