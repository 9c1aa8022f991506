package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/writingpad/writingpad/internal/writing"
	"github.com/writingpad/writingpad/internal/writing/service"
	"github.com/writingpad/writingpad/pkg/logger"
	"github.com/writingpad/writingpad/pkg/middleware"
)

// Plain-text bodies for failed requests. Error details only go to the log.
const (
	msgNotFound     = "해당 글을 찾을 수 없습니다."
	msgInternal     = "Internal Server Error"
	msgEditFailed   = "수정 중 오류가 발생했습니다."
	msgDeleteFailed = "삭제 중 오류가 발생했습니다."
)

// View is the template-facing shape of a writing. Date is pre-formatted.
type View struct {
	ID       string
	Title    string
	Contents string
	Date     string
}

type writingForm struct {
	Title    string `form:"title" json:"title"`
	Contents string `form:"contents" json:"contents"`
}

// Handler serves the HTML pages for writings.
type Handler struct {
	svc service.Service
	loc *time.Location
}

// NewHandler creates a handler. Dates are displayed in loc; nil keeps the
// location the store returned.
func NewHandler(svc service.Service, loc *time.Location) *Handler {
	return &Handler{svc: svc, loc: loc}
}

// Register mounts all writing routes. The engine must have the web
// templates installed.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.List)
	r.GET("/write", h.WriteForm)
	r.POST("/write", h.Create)
	r.GET("/detail/:id", h.Detail)
	r.GET("/edit/:id", h.EditForm)
	r.POST("/edit/:id", h.Update)
	r.POST("/delete/:id", h.Delete)
}

func (h *Handler) view(w *writing.Writing) View {
	return View{
		ID:       w.ID.Hex(),
		Title:    w.Title,
		Contents: w.Contents,
		Date:     writing.FormatDateIn(w.Date, h.loc),
	}
}

// List renders every writing, newest first.
func (h *Handler) List(c *gin.Context) {
	ws, err := h.svc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("list writings failed rid=%s: %v", middleware.RequestID(c), err)
		c.String(http.StatusInternalServerError, msgInternal)
		return
	}
	list := make([]View, 0, len(ws))
	for _, w := range ws {
		list = append(list, h.view(w))
	}
	c.HTML(http.StatusOK, "main", gin.H{"list": list})
}

func (h *Handler) WriteForm(c *gin.Context) {
	c.HTML(http.StatusOK, "write", nil)
}

// Create stores a new writing and shows it. A failed save re-renders the
// empty form with 200 and no message.
func (h *Handler) Create(c *gin.Context) {
	f := bindForm(c)
	w, err := h.svc.Create(c.Request.Context(), f.Title, f.Contents)
	if err != nil {
		logger.Errorf("create writing failed rid=%s: %v", middleware.RequestID(c), err)
		c.HTML(http.StatusOK, "write", nil)
		return
	}
	logger.Debugf("created writing %s rid=%s", w.ID.Hex(), middleware.RequestID(c))
	c.HTML(http.StatusOK, "detail", gin.H{"detail": h.view(w)})
}

func (h *Handler) Detail(c *gin.Context) {
	id := c.Param("id")
	w, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get writing "+id, err, msgInternal)
		return
	}
	c.HTML(http.StatusOK, "detail", gin.H{"detail": h.view(w)})
}

func (h *Handler) EditForm(c *gin.Context) {
	id := c.Param("id")
	w, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get writing "+id+" for edit", err, msgInternal)
		return
	}
	c.HTML(http.StatusOK, "edit", gin.H{"edit": h.view(w)})
}

// Update changes title and contents, then redirects to the detail page.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	f := bindForm(c)
	if _, err := h.svc.Update(c.Request.Context(), id, f.Title, f.Contents); err != nil {
		h.fail(c, "update writing "+id, err, msgEditFailed)
		return
	}
	c.Redirect(http.StatusFound, "/detail/"+id)
}

// Delete removes a writing. Deleting a missing writing still redirects.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		logger.Errorf("delete writing %s failed rid=%s: %v", id, middleware.RequestID(c), err)
		c.String(http.StatusInternalServerError, msgDeleteFailed)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// fail logs err and answers 404 for ErrNotFound, otherwise 500 with internalMsg.
func (h *Handler) fail(c *gin.Context, what string, err error, internalMsg string) {
	rid := middleware.RequestID(c)
	if errors.Is(err, service.ErrNotFound) {
		logger.Warnf("%s: not found rid=%s", what, rid)
		c.String(http.StatusNotFound, msgNotFound)
		return
	}
	logger.Errorf("%s failed rid=%s: %v", what, rid, err)
	c.String(http.StatusInternalServerError, internalMsg)
}

// bindForm reads title/contents from a urlencoded, multipart or JSON body.
// Anything unparseable counts as empty fields.
func bindForm(c *gin.Context) writingForm {
	var f writingForm
	if err := c.ShouldBind(&f); err != nil {
		logger.Debugf("ignoring unparseable body rid=%s: %v", middleware.RequestID(c), err)
		return writingForm{}
	}
	return f
}
