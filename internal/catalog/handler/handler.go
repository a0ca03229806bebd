package handler

import (
	"net/http"

	"conectaleads_backend/internal/catalog/service"
	"conectaleads_backend/internal/catalog/transport"
	"conectaleads_backend/platform/httpkit"
	"conectaleads_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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

// RegisterPublicRoutes mounts the storefront-facing read endpoints and the
// click attribution endpoint.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.ListCategories)
	rg.GET("/offers", h.ListOffers)
	rg.GET("/offers/:slug", h.GetOffer)
	rg.POST("/offers/:slug/click", h.Click)
}

// RegisterAdminRoutes mounts the authenticated management endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.PUT("/categories", h.UpsertCategory)
	rg.DELETE("/categories/:id", h.DeleteCategory)
	rg.POST("/offers", h.CreateOffer)
	rg.GET("/offers", h.ListAllOffers)
	rg.PATCH("/offers/:id", h.UpdateOffer)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, transport.ToCategoryResponse(cat))
	}
	httpkit.OK(c, out)
}

func (h *Handler) UpsertCategory(c *gin.Context) {
	var req transport.UpsertCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	cat, err := h.svc.UpsertCategory(c.Request.Context(), req.Slug, req.Name)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToCategoryResponse(cat))
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteCategory(c.Request.Context(), id)) {
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) listOffers(c *gin.Context, includeInactive bool) {
	var categoryID *uuid.UUID
	if raw := c.Query("categoryId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
		categoryID = &parsed
	}

	offers, err := h.svc.ListOffers(c.Request.Context(), categoryID, includeInactive)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.OfferResponse, 0, len(offers))
	for _, offer := range offers {
		out = append(out, transport.ToOfferResponse(offer))
	}
	httpkit.OK(c, out)
}

func (h *Handler) ListOffers(c *gin.Context)    { h.listOffers(c, false) }
func (h *Handler) ListAllOffers(c *gin.Context) { h.listOffers(c, true) }

func (h *Handler) GetOffer(c *gin.Context) {
	offer, history, err := h.svc.GetOfferBySlug(c.Request.Context(), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToOfferDetailResponse(offer, history))
}

func (h *Handler) CreateOffer(c *gin.Context) {
	var req transport.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	offer, err := h.svc.CreateOffer(c.Request.Context(), service.CreateOfferInput{
		CategoryID:  req.CategoryID,
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		URL:         req.URL,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.ToOfferResponse(offer))
}

func (h *Handler) UpdateOffer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	offer, err := h.svc.UpdateOffer(c.Request.Context(), id, service.UpdateOfferInput{
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		URL:         req.URL,
		Active:      req.Active,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToOfferResponse(offer))
}

func (h *Handler) Click(c *gin.Context) {
	var req transport.ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	offer, _, err := h.svc.GetOfferBySlug(c.Request.Context(), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}

	if httpkit.HandleError(c, h.svc.RecordClick(c.Request.Context(), offer.ID, service.ClickInput{
		Phone: req.Phone,
		Name:  req.Name,
		Kind:  req.Kind,
	})) {
		return
	}

	c.Status(http.StatusAccepted)
}
