package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/oksasatya/go-profile-manager/internal/application"
	"github.com/oksasatya/go-profile-manager/pkg/response"
	"github.com/oksasatya/go-profile-manager/pkg/validation"
)

// UIHandler exposes the session's form draft, delete confirmation and toast.
type UIHandler struct {
	Session *app.Session
}

func NewUIHandler(s *app.Session) *UIHandler {
	return &UIHandler{Session: s}
}

// GetForm GET /api/form
func (h *UIHandler) GetForm(c *gin.Context) {
	response.Success(c, http.StatusOK, h.Session.Form.State(), "form", nil)
}

// OpenCreate POST /api/form
func (h *UIHandler) OpenCreate(c *gin.Context) {
	h.Session.Form.OpenCreate()
	response.Success(c, http.StatusOK, h.Session.Form.State(), "form opened", nil)
}

// OpenEdit POST /api/form/edit/:id
func (h *UIHandler) OpenEdit(c *gin.Context) {
	p, ok := h.Session.Profiles.Get(c.Param("id"))
	if !ok {
		writeError(c, app.ErrProfileNotFound, nil)
		return
	}
	h.Session.Form.OpenEdit(p)
	response.Success(c, http.StatusOK, h.Session.Form.State(), "form opened", nil)
}

// UpdateFields PATCH /api/form {"name": "...", ...}
func (h *UIHandler) UpdateFields(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Session.Form.SetFields(fields); err != nil {
		writeError(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, h.Session.Form.State(), "form updated", nil)
}

// Submit POST /api/form/submit
func (h *UIHandler) Submit(c *gin.Context) {
	details, err := h.Session.Form.Submit(c.Request.Context(), h.Session.SaveDraft)
	if err != nil {
		writeError(c, err, details)
		return
	}
	response.Success(c, http.StatusOK, h.Session.Profiles.List(), "form submitted", nil)
}

// CancelForm DELETE /api/form
func (h *UIHandler) CancelForm(c *gin.Context) {
	h.Session.Form.Cancel()
	response.Success(c, http.StatusOK, h.Session.Form.State(), "form cancelled", nil)
}

type confirmationView struct {
	Open   bool `json:"open"`
	Target any  `json:"target,omitempty"`
}

func (h *UIHandler) confirmation() confirmationView {
	if t, ok := h.Session.Confirm.Target(); ok {
		return confirmationView{Open: true, Target: t}
	}
	return confirmationView{}
}

// RequestDelete POST /api/profiles/:id/confirm-delete
func (h *UIHandler) RequestDelete(c *gin.Context) {
	p, ok := h.Session.Profiles.Get(c.Param("id"))
	if !ok {
		writeError(c, app.ErrProfileNotFound, nil)
		return
	}
	if err := h.Session.Confirm.Open(p); err != nil {
		writeError(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, h.confirmation(), "confirmation opened", nil)
}

// GetConfirmation GET /api/confirmation
func (h *UIHandler) GetConfirmation(c *gin.Context) {
	response.Success(c, http.StatusOK, h.confirmation(), "confirmation", nil)
}

// Confirm POST /api/confirmation/confirm
func (h *UIHandler) Confirm(c *gin.Context) {
	if err := h.Session.Confirm.Confirm(c.Request.Context()); err != nil {
		writeError(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, h.Session.Profiles.List(), "profile deleted", nil)
}

// CancelConfirmation DELETE /api/confirmation
func (h *UIHandler) CancelConfirmation(c *gin.Context) {
	h.Session.Confirm.Cancel()
	response.Success(c, http.StatusOK, h.confirmation(), "confirmation cancelled", nil)
}

// GetToast GET /api/toast
func (h *UIHandler) GetToast(c *gin.Context) {
	n, ok := h.Session.Toast.Current()
	if !ok {
		response.Success[any](c, http.StatusOK, nil, "no notification", nil)
		return
	}
	response.Success(c, http.StatusOK, n, "notification", nil)
}

// DismissToast DELETE /api/toast
func (h *UIHandler) DismissToast(c *gin.Context) {
	h.Session.Toast.Dismiss()
	response.Success[any](c, http.StatusOK, nil, "notification dismissed", nil)
}
