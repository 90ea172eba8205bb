package handler

import (
	"net/http"
	"strconv"

	"festora-chat/internal/chat"
	"festora-chat/internal/middleware"
	"festora-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	index *chat.ConversationIndex
}

func NewConversationHandler(index *chat.ConversationIndex) *ConversationHandler {
	return &ConversationHandler{index: index}
}

func (h *ConversationHandler) List(c *gin.Context) {
	participantID, ok := middleware.ParticipantIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	summaries, err := h.index.List(c.Request.Context(), participantID, chat.ListOptions{
		Query: c.Query("q"),
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]httpdto.ConversationSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, httpdto.ToConversationSummaryResponse(s))
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(out))
}

func (h *ConversationHandler) Get(c *gin.Context) {
	participantID, ok := middleware.ParticipantIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	otherID, err := parseUUID(c.Param("participantId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid participant id", "INVALID_REQUEST"))
		return
	}

	conv, err := h.index.Get(c.Request.Context(), participantID, otherID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := httpdto.ConversationResponse{
		Key:      conv.Key.String(),
		Messages: make([]httpdto.MessageResponse, 0, len(conv.Messages)),
		Unread:   conv.UnreadFor(participantID),
	}
	for _, m := range conv.Messages {
		resp.Messages = append(resp.Messages, httpdto.ToMessageResponse(m))
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(resp))
}

func (h *ConversationHandler) Unread(c *gin.Context) {
	participantID, ok := middleware.ParticipantIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	total, err := h.index.UnreadTotal(c.Request.Context(), participantID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.UnreadResponse{Unread: total}))
}
