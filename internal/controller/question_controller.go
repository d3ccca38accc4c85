package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"leettrack_backend/internal/model"
	"leettrack_backend/internal/repository"
	"leettrack_backend/internal/service"
	"leettrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	questionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// Create godoc
// @Summary Create a custom question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateQuestionInput true "Question data"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/questions [post]
func (ctrl *QuestionController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var input service.CreateQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, "Invalid question data: "+err.Error())
		return
	}

	question, err := ctrl.questionService.Create(input, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidDifficulty), errors.Is(err, util.ErrInvalidSlug):
			util.BadRequest(c, err.Error())
		case errors.Is(err, util.ErrSlugExists):
			util.Error(c, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}

	util.Created(c, question)
}

// Get godoc
// @Summary Fetch one question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [get]
func (ctrl *QuestionController) Get(c *gin.Context) {
	question, err := ctrl.questionService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, question)
}

// Search godoc
// @Summary Search the question bank
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param q query string false "Title or slug substring"
// @Param difficulty query string false "Easy, Medium or Hard"
// @Param tags query string false "Comma separated tag list"
// @Param limit query int false "Page size, default 20"
// @Param offset query int false "Page offset"
// @Success 200 {object} util.Response
// @Router /api/questions [get]
func (ctrl *QuestionController) Search(c *gin.Context) {
	params := repository.QuestionSearchParams{
		Query:      c.Query("q"),
		Difficulty: model.Difficulty(c.Query("difficulty")),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if tags := c.Query("tags"); tags != "" {
		params.Tags = strings.Split(tags, ",")
	}
	if v := c.Query("is_custom"); v != "" {
		isCustom := v == "true"
		params.IsCustom = &isCustom
	}
	if v := c.Query("limit"); v != "" {
		params.Limit, _ = strconv.Atoi(v)
	}
	if v := c.Query("offset"); v != "" {
		params.Offset, _ = strconv.Atoi(v)
	}

	questions, total, err := ctrl.questionService.Search(params)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{
		"questions": questions,
		"total":     total,
		"has_more":  int64(params.Offset+len(questions)) < total,
	})
}

// Update godoc
// @Summary Update a question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [put]
func (ctrl *QuestionController) Update(c *gin.Context) {
	var input service.UpdateQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, "Invalid question data: "+err.Error())
		return
	}

	question, err := ctrl.questionService.Update(c.Param("id"), input)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(c)
		case errors.Is(err, util.ErrInvalidDifficulty):
			util.BadRequest(c, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}

	util.Success(c, question)
}

// Delete godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [delete]
func (ctrl *QuestionController) Delete(c *gin.Context) {
	err := ctrl.questionService.Delete(c.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"message": "Question deleted"})
}

// Stats godoc
// @Summary Question bank statistics
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/questions/stats [get]
func (ctrl *QuestionController) Stats(c *gin.Context) {
	stats, err := ctrl.questionService.Stats()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, stats)
}
