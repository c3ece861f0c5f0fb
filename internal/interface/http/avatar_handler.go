package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/go-profile-manager/internal/application"
	"github.com/oksasatya/go-profile-manager/pkg/response"
)

const maxAvatarBytes = 2 << 20

type AvatarHandler struct {
	Svc    *app.AvatarService
	Logger *logrus.Logger
}

func NewAvatarHandler(svc *app.AvatarService, logger *logrus.Logger) *AvatarHandler {
	return &AvatarHandler{Svc: svc, Logger: logger}
}

// Upload POST /api/avatars (multipart field "file"); returns the URL to put in a draft.
func (h *AvatarHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "file is required", map[string]string{"file": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("filename", fh.Filename).Warn("avatar upload failed")
		}
		writeError(c, err, nil)
		return
	}
	response.Success(c, http.StatusCreated, map[string]string{"url": url}, "avatar uploaded", nil)
}
