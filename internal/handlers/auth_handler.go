package handlers

import (
	"net/http"

	"github.com/campus-hq/portal-service/internal/config"
	"github.com/campus-hq/portal-service/internal/services"
	"github.com/campus-hq/portal-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const sessionCookieMaxAge = 24 * 60 * 60

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService services.AuthService, cfg *config.Config, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		cfg:         cfg,
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	secure := h.cfg.Environment == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, token, sessionCookieMaxAge, "/", h.cfg.CookieDomain, secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	secure := h.cfg.Environment == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, "", -1, "/", h.cfg.CookieDomain, secure, true)
}

// Register creates a new student account
func (h *AuthHandler) Register(c *gin.Context) {
	h.LogRequest(c, "Registering student")

	var req services.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	student, err := h.authService.RegisterStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Registration successful",
		Data:    student,
	})
}

// Login authenticates a student and issues the session cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.authService.LoginStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusOK, resp)
}

// LoginAdmin authenticates an admin account
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.authService.LoginAdmin(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusOK, resp)
}

// Logout ends the session. The cookie is cleared no matter what the
// token looks like; an unreadable token only skips the login-flag reset.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := sessionToken(c, h.cfg.CookieName)

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		h.clearSessionCookie(c)
		h.handleServiceError(c, err)
		return
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Logged out",
	})
}

// SendOTP mails a one-time verification code
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req services.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.authService.SendOTP(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "OTP sent",
	})
}

// VerifyOTP confirms a one-time code and marks the email verified
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req services.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.authService.VerifyOTP(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Email verified",
	})
}
