package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/go-profile-manager/internal/application"
	"github.com/oksasatya/go-profile-manager/internal/domain/entity"
	"github.com/oksasatya/go-profile-manager/pkg/response"
	"github.com/oksasatya/go-profile-manager/pkg/validation"
)

type ProfileHandler struct {
	Session *app.Session
	Logger  *logrus.Logger
}

func NewProfileHandler(s *app.Session, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Session: s, Logger: logger}
}

type profileRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

func (r profileRequest) draft() entity.ProfileDraft {
	return entity.ProfileDraft{Name: r.Name, Email: r.Email, Role: r.Role, Avatar: r.Avatar}
}

type collectionView struct {
	Profiles  []entity.Profile `json:"profiles"`
	Loading   bool             `json:"loading"`
	LoadError string           `json:"load_error,omitempty"`
	Busy      bool             `json:"busy"`
}

func (h *ProfileHandler) view() collectionView {
	st := h.Session.Store.State()
	return collectionView{
		Profiles:  st.Data,
		Loading:   st.Loading,
		LoadError: st.Error,
		Busy:      h.Session.Profiles.Busy(),
	}
}

// List GET /api/profiles
func (h *ProfileHandler) List(c *gin.Context) {
	v := h.view()
	response.Success(c, http.StatusOK, v, "profiles", map[string]any{"count": len(v.Profiles)})
}

// Create POST /api/profiles
func (h *ProfileHandler) Create(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	form := app.NewFormController()
	form.OpenCreate()
	_ = form.SetDraft(req.draft())

	var created entity.Profile
	details, err := form.Submit(c.Request.Context(), func(ctx context.Context, _ string, d entity.ProfileDraft) error {
		p, err := h.Session.Profiles.Create(ctx, d)
		created = p
		return err
	})
	if err != nil {
		writeError(c, err, details)
		return
	}
	response.Success(c, http.StatusCreated, created, "profile created", nil)
}

// Update PUT /api/profiles/:id
func (h *ProfileHandler) Update(c *gin.Context) {
	id := c.Param("id")
	current, ok := h.Session.Profiles.Get(id)
	if !ok {
		writeError(c, app.ErrProfileNotFound, nil)
		return
	}
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	form := app.NewFormController()
	form.OpenEdit(current)
	_ = form.SetDraft(req.draft())

	var updated entity.Profile
	details, err := form.Submit(c.Request.Context(), func(ctx context.Context, editingID string, d entity.ProfileDraft) error {
		p, err := h.Session.Profiles.Update(ctx, editingID, d)
		updated = p
		return err
	})
	if err != nil {
		writeError(c, err, details)
		return
	}
	response.Success(c, http.StatusOK, updated, "profile updated", nil)
}

// ClearAll DELETE /api/profiles
// Irreversible and unconfirmed, unlike single-record deletes.
func (h *ProfileHandler) ClearAll(c *gin.Context) {
	if err := h.Session.Profiles.ClearAll(c.Request.Context()); err != nil {
		writeError(c, err, nil)
		return
	}
	if h.Logger != nil {
		h.Logger.WithField("request_id", c.GetString(response.RequestIDKey)).Warn("all profiles cleared")
	}
	response.Success(c, http.StatusOK, h.view(), "all profiles cleared", nil)
}

// Reload POST /api/profiles/reload
func (h *ProfileHandler) Reload(c *gin.Context) {
	if _, err := h.Session.Reload(); err != nil {
		writeError(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, h.view(), "profiles reloaded", nil)
}

// Search GET /api/profiles/search?q=&size=
func (h *ProfileHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	out, err := h.Session.Profiles.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, out, "search results", map[string]any{"count": len(out)})
}

// DismissLoadError DELETE /api/load-error
func (h *ProfileHandler) DismissLoadError(c *gin.Context) {
	h.Session.Store.DismissError()
	response.Success(c, http.StatusOK, h.view(), "load error dismissed", nil)
}
