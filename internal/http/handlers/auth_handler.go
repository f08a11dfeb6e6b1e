// README: Auth handlers for register/login/otp.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"antar/internal/modules/auth"
	"antar/internal/modules/user"
)

type AuthHandler struct {
	auth *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{auth: svc}
}

type registerReq struct {
	PhoneNumber string  `json:"phone_number"`
	FullName    string  `json:"full_name"`
	Email       *string `json:"email"`
	Password    string  `json:"password"`
	Role        string  `json:"role"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	u, err := h.auth.Register(c.Request.Context(), auth.RegisterCommand{
		PhoneNumber: req.PhoneNumber,
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		Role:        user.Role(req.Role),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, userView(u))
}

type loginReq struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"token": res.Token, "user": userView(res.User)})
}

type otpRequestReq struct {
	PhoneNumber string `json:"phone_number"`
}

func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req otpRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.auth.RequestOTP(c.Request.Context(), req.PhoneNumber); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "sent"})
}

type otpVerifyReq struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req otpVerifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := h.auth.VerifyOTP(c.Request.Context(), req.PhoneNumber, req.Code)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"token": res.Token, "user": userView(res.User)})
}
