package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitness-auth-api/internal/application"
	"github.com/oksasatya/fitness-auth-api/internal/interface/middleware"
	"github.com/oksasatya/fitness-auth-api/pkg/helpers"
	"github.com/oksasatya/fitness-auth-api/pkg/response"
)

type AuthHandler struct {
	Auth         *application.AuthService
	Verification *application.Verification
	Cookies      *helpers.Manager
	Logger       *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, v *application.Verification, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Verification: v, Cookies: cookies, Logger: logger}
}

type signUpRequest struct {
	UserName           string `json:"userName" binding:"required,username"`
	Age                int    `json:"age" binding:"required,gte=1,lte=130"`
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required,pwd"`
	FitnessGoal        string `json:"fitnessGoal" binding:"required,max=64"`
	FitnessLevel       string `json:"fitnessLevel" binding:"required,max=64"`
	SubscriptionStatus string `json:"subscriptionStatus" binding:"required,max=64"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type resetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type signInResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SignUp POST /api/public/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	u, err := h.Auth.SignUp(c.Request.Context(), application.SignUpInput{
		Email:              req.Email,
		Password:           req.Password,
		UserName:           req.UserName,
		Age:                req.Age,
		FitnessGoal:        req.FitnessGoal,
		FitnessLevel:       req.FitnessLevel,
		SubscriptionStatus: req.SubscriptionStatus,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": u.ID, "email": u.Email}, "User registered. Please verify your email.", nil)
}

// SignIn POST /api/public/signin
// Sets the session cookie and also returns the token for bearer clients.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	res, err := h.Auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetSession(c, res.Token, res.ExpiresAt)
	response.Success(c, http.StatusOK, signInResponse{
		Token:     res.Token,
		UserID:    res.User.ID,
		ExpiresAt: res.ExpiresAt,
	}, "User Logged In Successfully", nil)
}

// VerifyEmail GET /api/public/emailverify/:token
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	if _, err := h.Verification.Redeem(c.Request.Context(), c.Param("token")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Email verified successfully!", nil)
}

// ResetPassword POST /api/public/resetpassword
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	if err := h.Verification.ResetPassword(c.Request.Context(), req.Email); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "New password sent to your email", nil)
}

// CheckAuth GET /api/public/check-auth, behind the Auth gate.
func (h *AuthHandler) CheckAuth(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"userId": c.GetString(middleware.CtxUserIDKey)}, "User is authenticated", nil)
}

// Logout POST /api/public/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "Logged out successfully", nil)
}
