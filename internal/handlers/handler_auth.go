package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
	"github.com/tradehive/tradehive_backend/internal/middleware"
)

// authHandler handles company signup and staff signin.
type authHandler struct {
	authService portssvc.AuthSvc
}

func newAuthHandler(as portssvc.AuthSvc) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes sets up the public authentication routes. Signin is
// rate limited by client IP to slow down credential stuffing.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvc) {
	h := newAuthHandler(authService)

	rate, _ := limiter.NewRateFromFormatted("10-M")
	ipLimiter := limiter.New(limitermemory.NewStore(), rate)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.signup)
		auth.POST("/signin", middleware.RateLimit(ipLimiter), h.signin)
	}
}

// signup godoc
// @Summary Register a new company
// @Description Creates a company and its first admin user, returning a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.SignupRequest true "Company and admin details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *authHandler) signup(c *gin.Context) {
	var req dto.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "sign up")
		return
	}
	c.JSON(http.StatusCreated, res)
}

// signin godoc
// @Summary Staff login
// @Description Verifies credentials and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param signin body dto.SigninRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/signin [post]
func (h *authHandler) signin(c *gin.Context) {
	var req dto.SigninRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authService.Signin(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "sign in")
		return
	}
	c.JSON(http.StatusOK, res)
}
