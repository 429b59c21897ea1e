package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/zervix/marketplace/internal/domain/errors"
	"github.com/zervix/marketplace/internal/domain/model"
	"github.com/zervix/marketplace/internal/server/http/dto"
)

// MessagingHandler manages inbox endpoints.
type MessagingHandler struct {
	facade MessagingFacade
}

// NewMessagingHandler constructs MessagingHandler.
func NewMessagingHandler(facade MessagingFacade) *MessagingHandler {
	return &MessagingHandler{facade: facade}
}

// Start handles POST /api/conversations.
func (h *MessagingHandler) Start(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	conv, err := h.facade.StartConversation(c.Request.Context(), userID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ConversationResponse{
		ID:            conv.ID,
		OtherUserID:   conv.OtherParticipant(userID),
		LastMessage:   conv.LastMessage,
		LastMessageAt: conv.LastMessageAt,
	})
}

// List handles GET /api/conversations.
func (h *MessagingHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	conversations, err := h.facade.Conversations(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(conversations) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.ConversationResponse, 0, len(conversations))
	for _, s := range conversations {
		response = append(response, dto.ConversationResponse{
			ID:            s.ID,
			OtherUserID:   s.OtherParticipant(userID),
			LastMessage:   s.LastMessage,
			LastMessageAt: s.LastMessageAt,
			UnreadCount:   s.UnreadCount,
		})
	}

	c.JSON(http.StatusOK, response)
}

// Send handles POST /api/conversations/:id/messages.
func (h *MessagingHandler) Send(c *gin.Context) {
	conversationID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var offer *model.Offer
	if req.Offer != nil {
		offer = &model.Offer{
			PriceCents:   req.Offer.PriceCents,
			DeliveryDays: req.Offer.DeliveryDays,
			Note:         req.Offer.Note,
		}
	}

	msg, err := h.facade.SendMessage(c.Request.Context(), conversationID, CurrentUserID(c), req.Content, offer)
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

	c.JSON(http.StatusCreated, dto.SendMessageResponse{ID: msg.ID})
}

// Fetch handles GET /api/conversations/:id/messages. Fetching marks the
// other party's messages as read for the caller.
func (h *MessagingHandler) Fetch(c *gin.Context) {
	conversationID, ok := PathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	messages, err := h.facade.Messages(c.Request.Context(), conversationID, CurrentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	response := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		response = append(response, toMessageResponse(m))
	}

	c.JSON(http.StatusOK, response)
}

func toMessageResponse(m model.Message) dto.MessageResponse {
	resp := dto.MessageResponse{
		ID:        m.ID,
		SenderID:  m.SenderID,
		Kind:      string(m.Kind),
		Content:   m.Content,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
	if m.Offer != nil {
		resp.Offer = &dto.OfferPayload{
			PriceCents:   m.Offer.PriceCents,
			DeliveryDays: m.Offer.DeliveryDays,
			Note:         m.Offer.Note,
		}
	}
	return resp
}
