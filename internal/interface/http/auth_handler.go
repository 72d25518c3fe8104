package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-doctor-directory/internal/application"
	"github.com/oksasatya/campus-doctor-directory/pkg/response"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

// Domain rules on email and password live in the service so their messages
// reach the client unchanged; binding only guards shape and size.
type registerRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"max=255"`
	Password string `json:"password" binding:"max=72"`
}

// Login binds no length rule on the password: any wrong credential is a 401.
type loginRequest struct {
	Email    string `json:"email" binding:"max=255"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Email            string `json:"email" binding:"max=255"`
	VerificationCode string `json:"verificationCode" binding:"max=16"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, http.StatusBadRequest, err)
		return
	}
	if _, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "Registration successful. Verification email sent.", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, http.StatusBadRequest, err)
		return
	}
	id, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "Login successful", gin.H{"name": id.Name, "email": id.Email})
}

func (h *AuthHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, http.StatusBadRequest, err)
		return
	}
	id, err := h.Svc.Verify(c.Request.Context(), req.Email, req.VerificationCode)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "Email verified successfully!", gin.H{"name": id.Name, "email": id.Email})
}
