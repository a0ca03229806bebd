package handler

import (
	"net/http"

	"conectaleads_backend/internal/shopee/service"
	"conectaleads_backend/internal/shopee/transport"
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders", h.ListOrders)
	rg.GET("/orders/:id/items", h.ListItems)
	rg.POST("/sync", h.Sync)
}

func (h *Handler) ListOrders(c *gin.Context) {
	var req transport.ListOrdersRequest
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
		pageSize = 50
	}

	orders, err := h.svc.ListOrders(c.Request.Context(), pageSize, (page-1)*pageSize)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, transport.ToOrderResponse(order))
	}
	httpkit.OK(c, out)
}

func (h *Handler) ListItems(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid order id", nil)
		return
	}

	items, err := h.svc.ListItems(c.Request.Context(), orderID)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.OrderItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, transport.ToOrderItemResponse(item))
	}
	httpkit.OK(c, out)
}

// Sync runs a synchronous sync pass. Scheduled runs go through the worker;
// this endpoint exists for on-demand refreshes from the admin UI.
func (h *Handler) Sync(c *gin.Context) {
	result, err := h.svc.SyncOrders(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToSyncResponse(result))
}
