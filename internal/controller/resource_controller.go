package controller

import (
	"edugame_backend/internal/model"
	"edugame_backend/internal/service"
	"edugame_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ResourceController struct {
	ResourceService *service.ResourceService
}

func NewResourceController(resourceService *service.ResourceService) *ResourceController {
	return &ResourceController{ResourceService: resourceService}
}

// @Summary List community resources
// @Description Public list of jobs, grants, services, news and education resources
// @Tags resources
// @Produce json
// @Param type query string false "Resource type" Enums(job, grant, service, news, education)
// @Param location query string false "Location substring"
// @Param limit query int false "Max results" default(50)
// @Success 200 {object} util.Response
// @Router /api/resources [get]
func (c *ResourceController) ListResources(ctx *gin.Context) {
	resourceType := model.ResourceType(ctx.Query("type"))
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	resources, err := c.ResourceService.List(resourceType, ctx.Query("location"), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, resources)
}

// @Summary Get a resource
// @Tags resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} util.Response
// @Router /api/resources/{id} [get]
func (c *ResourceController) GetResource(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid resource ID")
		return
	}

	resource, err := c.ResourceService.Get(uint(id))
	if err == util.ErrResourceNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, resource)
}

// @Summary Create a resource
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resource body service.ResourceRequest true "Resource"
// @Success 201 {object} util.Response
// @Router /api/admin/resources [post]
func (c *ResourceController) CreateResource(ctx *gin.Context) {
	var req service.ResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resource, err := c.ResourceService.Create(&req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, resource)
}

// @Summary Update a resource
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Param resource body service.ResourceRequest true "Resource"
// @Success 200 {object} util.Response
// @Router /api/admin/resources/{id} [put]
func (c *ResourceController) UpdateResource(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid resource ID")
		return
	}

	var req service.ResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resource, err := c.ResourceService.Update(uint(id), &req)
	if err == util.ErrResourceNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, resource)
}

// @Summary Deactivate a resource
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} util.Response
// @Router /api/admin/resources/{id} [delete]
func (c *ResourceController) DeleteResource(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid resource ID")
		return
	}

	err = c.ResourceService.Delete(uint(id))
	if err == util.ErrResourceNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Resource deactivated"})
}
