package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/zervix/marketplace/internal/domain/errors"
	"github.com/zervix/marketplace/internal/domain/model"
	"github.com/zervix/marketplace/internal/server/http/dto"
)

// SellerHandler manages seller profile and review endpoints.
type SellerHandler struct {
	facade SellerFacade
}

// NewSellerHandler constructs SellerHandler.
func NewSellerHandler(facade SellerFacade) *SellerHandler {
	return &SellerHandler{facade: facade}
}

// Profile handles GET /api/sellers/:id.
func (h *SellerHandler) Profile(c *gin.Context) {
	sellerID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	profile, err := h.facade.SellerProfile(c.Request.Context(), sellerID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toSellerProfileResponse(profile))
}

// Review handles POST /api/gigs/:id/reviews.
func (h *SellerHandler) Review(c *gin.Context) {
	gigID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	review, err := h.facade.PostReview(c.Request.Context(), CurrentUserID(c), gigID,
		req.Rating, req.Communication, req.Service, req.Recommend, req.Comment)
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

	c.JSON(http.StatusCreated, toReviewResponse(*review))
}

func toReviewResponse(r model.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        r.ID,
		GigID:     r.GigID,
		BuyerID:   r.BuyerID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func toSellerProfileResponse(p *model.SellerProfile) dto.SellerProfileResponse {
	resp := dto.SellerProfileResponse{
		ID:              p.User.ID,
		DisplayName:     p.User.DisplayName,
		SellerLevel:     string(p.User.SellerLevel),
		MemberSince:     p.Stats.MemberSince,
		CompletedOrders: p.Stats.CompletedOrders,
		ReviewCount:     p.Stats.ReviewCount,
		AverageRating:   p.Stats.AverageRating,
		Gigs:            make([]dto.GigResponse, 0, len(p.Gigs)),
		Reviews:         make([]dto.ReviewResponse, 0, len(p.Reviews)),
	}
	for _, g := range p.Gigs {
		resp.Gigs = append(resp.Gigs, dto.GigResponse{ID: g.ID, Title: g.Title, Category: g.Category})
	}
	for _, r := range p.Reviews {
		resp.Reviews = append(resp.Reviews, toReviewResponse(r))
	}
	return resp
}
