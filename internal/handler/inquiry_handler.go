package handler

import (
	"context"
	"net/http"

	"festora-chat/internal/domain/conversation"
	domain "festora-chat/internal/domain/inquiry"
	"festora-chat/internal/domain/message"
	"festora-chat/internal/inquiry"
	"festora-chat/internal/middleware"
	"festora-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InquiryHandler struct {
	linkage *inquiry.Linkage
}

func NewInquiryHandler(linkage *inquiry.Linkage) *InquiryHandler {
	return &InquiryHandler{linkage: linkage}
}

func (h *InquiryHandler) Open(c *gin.Context) {
	var req httpdto.OpenInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	participantID, ok := middleware.ParticipantIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	otherID, err := parseUUID(req.OtherParticipantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid other_participant_id", "INVALID_REQUEST"))
		return
	}
	vendorID, err := parseUUID(req.VendorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid vendor_id", "INVALID_REQUEST"))
		return
	}

	var target domain.Target
	if domain.InquiryKind(req.Kind) == domain.KindAd {
		adID, err := parseUUID(req.AdID)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid ad_id", "INVALID_REQUEST"))
			return
		}
		target = domain.AdTarget(adID)
	} else {
		serviceID, err := parseUUID(req.ServiceID)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid service_id", "INVALID_REQUEST"))
			return
		}
		target = domain.ServiceTarget(serviceID, message.ServiceType(req.ServiceType))
	}

	key := conversation.NewKey(participantID, otherID)
	inq, err := h.linkage.Open(c.Request.Context(), key, target, vendorID, req.InquiryText)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ToInquiryResponse(inq)))
}

func (h *InquiryHandler) MarkAnswered(c *gin.Context) {
	h.transition(c, h.linkage.MarkAnswered)
}

func (h *InquiryHandler) Convert(c *gin.Context) {
	h.transition(c, h.linkage.Convert)
}

func (h *InquiryHandler) Close(c *gin.Context) {
	h.transition(c, h.linkage.Close)
}

func (h *InquiryHandler) List(c *gin.Context) {
	participantID, ok := middleware.ParticipantIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var (
		items []domain.Inquiry
		err   error
	)
	if other := c.Query("with"); other != "" {
		otherID, parseErr := parseUUID(other)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid participant id", "INVALID_REQUEST"))
			return
		}
		key := conversation.NewKey(participantID, otherID)
		items, err = h.linkage.ListByConversation(c.Request.Context(), key)
	} else {
		items, err = h.linkage.ListByVendor(c.Request.Context(), participantID)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]httpdto.InquiryResponse, 0, len(items))
	for _, i := range items {
		out = append(out, httpdto.ToInquiryResponse(i))
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(out))
}

func (h *InquiryHandler) transition(c *gin.Context, op func(ctx context.Context, id uuid.UUID) error) {
	inquiryID, err := parseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid inquiry id", "INVALID_REQUEST"))
		return
	}
	if err := op(c.Request.Context(), inquiryID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"id": inquiryID.String()}))
}
