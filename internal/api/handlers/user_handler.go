package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/projectsign/internal/application"
	"github.com/linskybing/projectsign/internal/config"
	"github.com/linskybing/projectsign/internal/domain/user"
	"github.com/linskybing/projectsign/pkg/response"
	"github.com/linskybing/projectsign/pkg/utils"
)

const sessionCookieMaxAge = 24 * 3600

type UserHandler struct {
	svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register godoc
// @Summary Owner registration
// @Tags auth
// @Accept json
// @Produce json
// @Param input body user.CreateUserInput true "User registration info"
// @Success 201 {object} user.UserDTO
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 409 {object} response.ErrorResponse "Username already taken"
// @Router /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input user.CreateUserInput
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.svc.RegisterUser(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user.ToDTO(*u))
}

// Login godoc
// @Summary Owner login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body user.LoginInput true "Credentials"
// @Success 200 {object} response.TokenResponse "JWT token and user info"
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 401 {object} response.ErrorResponse "Invalid username or password"
// @Router /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input user.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}

	u, token, err := h.svc.LoginUser(input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		"token",
		token,
		sessionCookieMaxAge,
		"/",
		"",
		config.IsProduction, // Secure only in production
		true,
	)

	c.JSON(http.StatusOK, response.TokenResponse{
		Token:    token,
		UID:      u.UID,
		Username: u.Username,
	})
}

// Logout godoc
// @Summary Owner logout
// @Tags auth
// @Produce json
// @Success 200 {object} response.MessageResponse "Logout successful"
// @Router /logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", config.IsProduction, true)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Logout successful"})
}

// AuthStatus godoc
// @Summary Current session
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} user.UserDTO
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/status [get]
func (h *UserHandler) AuthStatus(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	u, err := h.svc.FindUserByID(uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.ToDTO(u))
}
