package controller

import (
	"strconv"
	"strings"

	"leettrack_backend/internal/service"
	"leettrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// LeetCodeController proxies the public GraphQL API so browser clients never
// talk to LeetCode directly.
type LeetCodeController struct {
	leetcodeService *service.LeetCodeService
}

func NewLeetCodeController(leetcodeService *service.LeetCodeService) *LeetCodeController {
	return &LeetCodeController{leetcodeService: leetcodeService}
}

// Daily godoc
// @Summary LeetCode's official question of today
// @Tags leetcode
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/leetcode/daily [get]
func (ctrl *LeetCodeController) Daily(c *gin.Context) {
	challenge, err := ctrl.leetcodeService.GetDailyChallenge(c.Request.Context())
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, challenge)
}

// Question godoc
// @Summary Full problem detail by slug
// @Tags leetcode
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Problem title slug"
// @Success 200 {object} util.Response
// @Router /api/leetcode/question/{slug} [get]
func (ctrl *LeetCodeController) Question(c *gin.Context) {
	question, err := ctrl.leetcodeService.Question(c.Request.Context(), c.Param("slug"))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, question)
}

// Problems godoc
// @Summary Browse the LeetCode problem set
// @Tags leetcode
// @Produce json
// @Security BearerAuth
// @Param tags query string false "Comma separated topic slugs"
// @Param difficulty query string false "Easy, Medium or Hard"
// @Param limit query int false "Page size, default 50"
// @Param skip query int false "Page offset"
// @Success 200 {object} util.Response
// @Router /api/leetcode/questions [get]
func (ctrl *LeetCodeController) Problems(c *gin.Context) {
	var tags []string
	if v := c.Query("tags"); v != "" {
		tags = strings.Split(v, ",")
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}
	skip := 0
	if v := c.Query("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}

	problems, err := ctrl.leetcodeService.Problems(c.Request.Context(), tags, c.Query("difficulty"), limit, skip)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, problems)
}

// Profile godoc
// @Summary Public LeetCode profile stats
// @Tags leetcode
// @Produce json
// @Security BearerAuth
// @Param username path string true "LeetCode username"
// @Success 200 {object} util.Response
// @Router /api/leetcode/user/{username} [get]
func (ctrl *LeetCodeController) Profile(c *gin.Context) {
	profile, err := ctrl.leetcodeService.UserProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, profile)
}
