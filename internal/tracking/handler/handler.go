package handler

import (
	"net/http"
	"time"

	"conectaleads_backend/internal/tracking/repository"
	"conectaleads_backend/internal/tracking/service"
	"conectaleads_backend/internal/tracking/transport"
	"conectaleads_backend/platform/httpkit"
	"conectaleads_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/events", h.Track)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/events", h.List)
	rg.GET("/summary", h.Summary)
}

func (h *Handler) Track(c *gin.Context) {
	var req transport.TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	event, err := h.svc.Track(c.Request.Context(), service.TrackInput{
		Type:        req.Type,
		SessionID:   req.SessionID,
		Path:        req.Path,
		Referrer:    req.Referrer,
		UTMSource:   req.UTMSource,
		UTMMedium:   req.UTMMedium,
		UTMCampaign: req.UTMCampaign,
		UTMContent:  req.UTMContent,
		UTMTerm:     req.UTMTerm,
		Data:        req.Data,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.ToEventResponse(event))
}

func (h *Handler) List(c *gin.Context) {
	var req transport.ListEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 100
	}

	events, err := h.svc.List(c.Request.Context(), repository.ListParams{
		Type:      req.Type,
		SessionID: req.SessionID,
		Since:     req.Since,
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.EventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, transport.ToEventResponse(event))
	}
	httpkit.OK(c, out)
}

func (h *Handler) Summary(c *gin.Context) {
	window := 7 * 24 * time.Hour
	if raw := c.Query("window"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
		window = parsed
	}

	counts, err := h.svc.Summary(c.Request.Context(), window)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"window": window.String(), "counts": counts})
}
