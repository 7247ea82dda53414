package handler

import (
	"net/http"

	"ev-marketplace/internal/models"
	"ev-marketplace/services/market/helpers"
	"ev-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// RegisterHandler handles POST /api/Auth/register
func (h *MarketHandler) RegisterHandler(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	profile, err := h.service.Register(req)
	if err != nil {
		helpers.HandleServiceError(c, "RegisterHandler", err, map[string]any{"email": req.Email})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, profile, "registered successfully")
	helpers.LogSuccess("RegisterHandler", "user registered", map[string]any{"user_id": profile.ID})
}

// LoginHandler handles POST /api/Auth/login
func (h *MarketHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	res, err := h.service.Login(req)
	if err != nil {
		helpers.HandleServiceError(c, "LoginHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, res, "logged in successfully")
	helpers.LogSuccess("LoginHandler", "user logged in", map[string]any{"user_id": res.Profile.ID})
}

// MeHandler handles GET /api/Auth/me
func (h *MarketHandler) MeHandler(c *gin.Context) {
	userID := helpers.UserID(c)
	profile, err := h.service.Me(userID)
	if err != nil {
		helpers.HandleServiceError(c, "MeHandler", err, map[string]any{"user_id": userID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, profile, "profile retrieved successfully")
}

// UsersHandler handles GET /api/Admin/users
func (h *MarketHandler) UsersHandler(c *gin.Context) {
	var q helpers.UsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		helpers.HandleBindError(c, "UsersHandler", err)
		return
	}

	page := h.service.Users(q.Filter())
	utils.JSONResponse(c, http.StatusOK, page, "users retrieved successfully")
	helpers.LogSuccess("UsersHandler", "users retrieved successfully", map[string]any{
		"count": len(page.Items),
		"total": page.TotalItems,
	})
}
