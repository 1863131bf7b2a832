package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/weiawesome/wes-io-live/idgen/internal/domain"
	"github.com/weiawesome/wes-io-live/idgen/internal/service"
	"github.com/weiawesome/wes-io-live/idgen/pkg/log"
	"github.com/weiawesome/wes-io-live/idgen/pkg/response"
)

// Handler handles HTTP requests for the id service.
type Handler struct {
	idService service.IDService
}

// NewHandler creates a new HTTP handler.
func NewHandler(idService service.IDService) *Handler {
	return &Handler{idService: idService}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		ids := api.Group("/ids")
		{
			ids.POST("", h.GenerateID)
			ids.POST("/batch", h.GenerateBatch)
			ids.GET("/inspect", h.InspectID)
			ids.GET("/validate", h.ValidateID)
		}
	}
}

// GenerateID generates one identifier.
func (h *Handler) GenerateID(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind generate request")
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.idService.Generate(ctx, &req)
	if err != nil {
		h.handleError(c, err, "failed to generate id")
		return
	}

	response.Created(c, resp)
}

// GenerateBatch generates several identifiers of one spec.
func (h *Handler) GenerateBatch(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.GenerateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind batch request")
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.idService.GenerateBatch(ctx, &req)
	if err != nil {
		h.handleError(c, err, "failed to generate ids")
		return
	}

	response.Created(c, resp)
}

// InspectID classifies the id query parameter.
func (h *Handler) InspectID(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.InspectRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.idService.Inspect(ctx, &req)
	if err != nil {
		h.handleError(c, err, "failed to inspect id")
		return
	}

	response.Success(c, resp)
}

// ValidateID checks the id query parameter against the type parameter.
func (h *Handler) ValidateID(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.ValidateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.idService.Validate(ctx, &req)
	if err != nil {
		h.handleError(c, err, "failed to validate id")
		return
	}

	response.Success(c, resp)
}

func (h *Handler) handleError(c *gin.Context, err error, msg string) {
	if service.IsInvalidArgument(err) {
		response.BadRequest(c, err.Error())
		return
	}
	l := log.Ctx(c.Request.Context())
	l.Error().Err(err).Msg(msg)
	response.InternalError(c, msg)
}
