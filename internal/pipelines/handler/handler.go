package handler

import (
	"net/http"

	"conectaleads_backend/internal/pipelines/service"
	"conectaleads_backend/internal/pipelines/transport"
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
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Rename)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/stages", h.AddStage)
	rg.PUT("/:id/stages/reorder", h.ReorderStages)
	rg.PUT("/:id/stages/:stageId", h.RenameStage)
	rg.DELETE("/:id/stages/:stageId", h.DeleteStage)
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreatePipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	stages := make([]service.StageInput, 0, len(req.Stages))
	for _, stage := range req.Stages {
		stages = append(stages, service.StageInput{Key: stage.Key, Name: stage.Name})
	}

	created, createdStages, err := h.svc.CreatePipeline(c.Request.Context(), req.Name, stages)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.ToPipelineResponse(created, createdStages))
}

func (h *Handler) List(c *gin.Context) {
	pipelines, err := h.svc.ListPipelines(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.PipelineResponse, 0, len(pipelines))
	for _, p := range pipelines {
		out = append(out, transport.ToPipelineResponse(p, nil))
	}
	httpkit.OK(c, out)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	p, stages, err := h.svc.GetPipeline(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToPipelineResponse(p, stages))
}

func (h *Handler) Rename(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	p, err := h.svc.RenamePipeline(c.Request.Context(), id, req.Name)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToPipelineResponse(p, nil))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if httpkit.HandleError(c, h.svc.DeletePipeline(c.Request.Context(), id)) {
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) AddStage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.AddStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	stage, err := h.svc.AddStage(c.Request.Context(), id, service.StageInput{Key: req.Key, Name: req.Name})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.ToStageResponse(stage))
}

func (h *Handler) RenameStage(c *gin.Context) {
	stageID, err := uuid.Parse(c.Param("stageId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	stage, err := h.svc.RenameStage(c.Request.Context(), stageID, req.Name)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToStageResponse(stage))
}

func (h *Handler) ReorderStages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.ReorderStagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	stages, err := h.svc.ReorderStages(c.Request.Context(), id, req.StageIDs)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToStageResponses(stages))
}

func (h *Handler) DeleteStage(c *gin.Context) {
	stageID, err := uuid.Parse(c.Param("stageId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteStage(c.Request.Context(), stageID)) {
		return
	}

	c.Status(http.StatusNoContent)
}
