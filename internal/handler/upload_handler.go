package handler

import (
	"net/http"
	"path"
	"strings"

	"festora-chat/internal/middleware"
	"festora-chat/internal/storage"
	"festora-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadHandler struct {
	s3 *storage.Client
}

func NewUploadHandler(s3 *storage.Client) *UploadHandler {
	return &UploadHandler{s3: s3}
}

func (h *UploadHandler) Presign(c *gin.Context) {
	var req httpdto.PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	participantID, ok := middleware.ParticipantIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	name := path.Base(strings.TrimSpace(req.FileName))
	if name == "" || name == "." {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("file_name is required", "INVALID_REQUEST"))
		return
	}

	key := "attachments/" + participantID.String() + "/" + uuid.New().String() + "/" + name
	uploadURL, headers, err := h.s3.PresignPut(c.Request.Context(), key, req.ContentType, req.SizeBytes)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.PresignUploadResponse{
		UploadURL:     uploadURL,
		Headers:       headers,
		AttachmentURL: h.s3.FileURL(key),
	}))
}
