package handler

import (
	"context"
	"net/http"

	"festora-chat/internal/chat"
	"festora-chat/internal/domain/message"
	"festora-chat/internal/middleware"
	"festora-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MessageHandler struct {
	composer *chat.Composer
	tracker  *chat.DeliveryTracker
}

func NewMessageHandler(composer *chat.Composer, tracker *chat.DeliveryTracker) *MessageHandler {
	return &MessageHandler{composer: composer, tracker: tracker}
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req httpdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	senderID, ok := middleware.ParticipantIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	receiverID, err := parseUUID(req.ReceiverID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid receiver_id", "INVALID_REQUEST"))
		return
	}

	stored, err := h.composer.Send(c.Request.Context(), chat.Draft{
		SenderID:      senderID,
		ReceiverID:    receiverID,
		Kind:          message.MessageKind(req.Kind),
		Body:          req.Body,
		AttachmentURL: req.AttachmentURL,
		ServiceType:   message.ServiceType(req.ServiceType),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ToMessageResponse(stored)))
}

func (h *MessageHandler) MarkDelivered(c *gin.Context) {
	h.advance(c, h.tracker.MarkDelivered)
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	h.advance(c, h.tracker.MarkRead)
}

func (h *MessageHandler) Delete(c *gin.Context) {
	h.advance(c, h.tracker.SoftDelete)
}

func (h *MessageHandler) advance(c *gin.Context, op func(ctx context.Context, id uuid.UUID) error) {
	messageID, err := parseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}
	if err := op(c.Request.Context(), messageID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"id": messageID.String()}))
}
