package controller

import (
	"errors"
	"net/http"

	"leettrack_backend/internal/service"
	"leettrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PathController struct {
	pathService *service.PathService
}

func NewPathController(pathService *service.PathService) *PathController {
	return &PathController{pathService: pathService}
}

// List godoc
// @Summary List public learning paths
// @Tags paths
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/paths [get]
func (ctrl *PathController) List(c *gin.Context) {
	paths, err := ctrl.pathService.ListPublic()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"paths": paths})
}

// Create godoc
// @Summary Create a learning path
// @Tags paths
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreatePathInput true "Path data"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/paths [post]
func (ctrl *PathController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var input service.CreatePathInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, "Invalid path data: "+err.Error())
		return
	}

	path, err := ctrl.pathService.Create(input, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.BadRequest(c, "One or more question ids do not exist")
		case errors.Is(err, util.ErrInvalidDifficulty):
			util.BadRequest(c, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}

	util.Created(c, path)
}

// Get godoc
// @Summary Fetch one learning path
// @Tags paths
// @Produce json
// @Security BearerAuth
// @Param id path string true "Path id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/paths/{id} [get]
func (ctrl *PathController) Get(c *gin.Context) {
	path, err := ctrl.pathService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrPathNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, path)
}

// Questions godoc
// @Summary Path curriculum with caller progress
// @Tags paths
// @Produce json
// @Security BearerAuth
// @Param id path string true "Path id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/paths/{id}/questions [get]
func (ctrl *PathController) Questions(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	rows, err := ctrl.pathService.Questions(c.Param("id"), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrPathNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"questions": rows})
}

type enrollPathRequest struct {
	PathID string `json:"path_id" binding:"required"`
}

// Enroll godoc
// @Summary Enroll in a public path
// @Tags paths
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/paths/enroll [post]
func (ctrl *PathController) Enroll(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req enrollPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "path_id is required")
		return
	}

	enrollment, err := ctrl.pathService.Enroll(claims.UserID, req.PathID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPathNotFound):
			util.NotFound(c)
		case errors.Is(err, util.ErrPathNotPublic):
			util.Error(c, http.StatusForbidden, err.Error())
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Error(c, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}

	util.Created(c, enrollment)
}

// Enrolled godoc
// @Summary The caller's enrollments with progress counts
// @Tags paths
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/paths/enrolled [get]
func (ctrl *PathController) Enrolled(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	paths, err := ctrl.pathService.EnrolledPaths(claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"paths": paths})
}

// Reviews godoc
// @Summary Review-flagged questions inside a path
// @Tags paths
// @Produce json
// @Security BearerAuth
// @Param path_id query string true "Path id"
// @Success 200 {object} util.Response
// @Router /api/paths/reviews [get]
func (ctrl *PathController) Reviews(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	pathID := c.Query("path_id")
	if pathID == "" {
		util.BadRequest(c, "path_id is required")
		return
	}

	questions, err := ctrl.pathService.ReviewQuestions(claims.UserID, pathID)
	if err != nil {
		if errors.Is(err, util.ErrPathNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"questions": questions})
}
