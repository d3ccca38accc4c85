package controller

import (
	"errors"
	"net/http"

	"leettrack_backend/internal/model"
	"leettrack_backend/internal/service"
	"leettrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DailyController struct {
	dailyService  *service.DailyService
	reviewService *service.ReviewService
}

func NewDailyController(dailyService *service.DailyService, reviewService *service.ReviewService) *DailyController {
	return &DailyController{
		dailyService:  dailyService,
		reviewService: reviewService,
	}
}

// GetToday godoc
// @Summary Today's question feed
// @Description Path questions from active enrollments, due reviews and ad-hoc picks for the current date
// @Tags daily
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/daily/today [get]
func (ctrl *DailyController) GetToday(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.FeedAuthRequired(c)
		return
	}

	feed, err := ctrl.dailyService.GetToday(claims.UserID)
	if err != nil {
		util.LogFeedError(c, err, "Failed to fetch todays questions")
		return
	}

	util.FeedOK(c, gin.H{
		"date":      feed.Date,
		"questions": feed.Questions,
		"total":     feed.Total,
		"breakdown": feed.Breakdown,
	})
}

// GetMorePathQuestions godoc
// @Summary One extra path question
// @Tags daily
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/daily/more-path [get]
func (ctrl *DailyController) GetMorePathQuestions(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.FeedAuthRequired(c)
		return
	}

	question, err := ctrl.dailyService.GetMorePathQuestions(claims.UserID)
	if err != nil {
		util.LogFeedError(c, err, "Failed to fetch more path questions")
		return
	}
	if question == nil {
		util.FeedOK(c, gin.H{
			"question": nil,
			"message":  "No more path questions available",
		})
		return
	}

	util.FeedOK(c, gin.H{"question": question})
}

type completeRequest struct {
	QuestionID string  `json:"question_id"`
	PathID     *string `json:"path_id"`
	SourceType string  `json:"source_type"`
}

// Complete godoc
// @Summary Mark a question completed
// @Tags daily
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/daily/complete [post]
func (ctrl *DailyController) Complete(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.FeedAuthRequired(c)
		return
	}

	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.QuestionID == "" {
		util.FeedError(c, http.StatusBadRequest, "question_id is required")
		return
	}

	source := model.SourceType(req.SourceType)
	if req.SourceType != "" && !source.Valid() {
		util.FeedError(c, http.StatusBadRequest, "source_type must be path, review or daily")
		return
	}

	err := ctrl.reviewService.Complete(claims.UserID, req.QuestionID, req.PathID, source)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.FeedError(c, http.StatusNotFound, "Question not found")
			return
		}
		util.LogFeedError(c, err, "Failed to mark question as completed")
		return
	}

	util.FeedOK(c, gin.H{"message": "Question marked as completed"})
}

type reviewRequest struct {
	QuestionID string  `json:"question_id"`
	PathID     *string `json:"path_id"`
	SourceType string  `json:"source_type"`
}

// ScheduleReview godoc
// @Summary Flag a question for spaced repetition
// @Tags daily
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/daily/review [post]
func (ctrl *DailyController) ScheduleReview(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.FeedAuthRequired(c)
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.QuestionID == "" {
		util.FeedError(c, http.StatusBadRequest, "question_id is required")
		return
	}

	source := model.SourceType(req.SourceType)
	if req.SourceType != "" && !source.Valid() {
		util.FeedError(c, http.StatusBadRequest, "source_type must be path, review or daily")
		return
	}

	next, reviewCount, err := ctrl.reviewService.ScheduleReview(claims.UserID, req.QuestionID, req.PathID, source)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.FeedError(c, http.StatusNotFound, "Question not found")
			return
		}
		util.LogFeedError(c, err, "Failed to schedule question for review")
		return
	}

	util.FeedOK(c, gin.H{
		"message":          "Question scheduled for review on " + next.Format("2006-01-02"),
		"next_review_date": next.Format("2006-01-02"),
		"review_count":     reviewCount,
	})
}

type enrollDailyRequest struct {
	QuestionID string `json:"question_id"`
}

// EnrollDaily godoc
// @Summary Queue a question into today's feed
// @Tags daily
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/daily/enroll [post]
func (ctrl *DailyController) EnrollDaily(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.FeedAuthRequired(c)
		return
	}

	var req enrollDailyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.QuestionID == "" {
		util.FeedError(c, http.StatusBadRequest, "question_id is required")
		return
	}

	err := ctrl.dailyService.EnrollDaily(claims.UserID, req.QuestionID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.FeedError(c, http.StatusNotFound, "Question not found")
		case errors.Is(err, util.ErrAlreadyQueued):
			util.FeedError(c, http.StatusBadRequest, "Question already in todays queue")
		default:
			util.LogFeedError(c, err, "Failed to add question to daily queue")
		}
		return
	}

	util.FeedOK(c, gin.H{"message": "Question added to todays queue"})
}

// SyncDailyChallenge godoc
// @Summary Import LeetCode's official daily challenge
// @Tags daily
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/daily/sync [post]
func (ctrl *DailyController) SyncDailyChallenge(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.FeedAuthRequired(c)
		return
	}

	question, err := ctrl.dailyService.SyncDailyChallenge(c.Request.Context(), claims.UserID)
	if err != nil {
		util.LogFeedError(c, err, "Failed to sync daily challenge")
		return
	}

	util.FeedOK(c, gin.H{
		"message":  "Daily challenge synced",
		"question": question,
	})
}
