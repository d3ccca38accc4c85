package controller

import (
	"errors"
	"net/http"

	"leettrack_backend/internal/service"
	"leettrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "Registration data"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, "Invalid registration data: "+err.Error())
		return
	}

	user, token, err := ctrl.authService.Register(input)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmailRegistered), errors.Is(err, util.ErrUsernameTaken):
			util.Error(c, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}

	util.Created(c, gin.H{
		"user":  user,
		"token": token,
	})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "Credentials"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, "Invalid login data: "+err.Error())
		return
	}

	user, token, err := ctrl.authService.Login(input)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{
		"user":  user,
		"token": token,
	})
}

// Profile godoc
// @Summary Current user with progress stats
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/auth/profile [get]
func (ctrl *AuthController) Profile(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	user, stats, err := ctrl.authService.Profile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{
		"user":  user,
		"stats": stats,
	})
}

// Logout godoc
// @Summary Log out
// @Description Stateless tokens are not revoked server side; the cookie is cleared.
// @Tags auth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	util.Success(c, gin.H{"message": "Logged out"})
}
