package handler

import (
	"net/http"

	"ev-marketplace/internal/models"
	"ev-marketplace/services/market/helpers"
	"ev-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// AddFavoriteHandler handles POST /api/Favorites
func (h *MarketHandler) AddFavoriteHandler(c *gin.Context) {
	var req models.CreateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddFavoriteHandler", err)
		return
	}

	userID := helpers.UserID(c)
	fav, err := h.service.AddFavorite(userID, req.ListingID)
	if err != nil {
		helpers.HandleServiceError(c, "AddFavoriteHandler", err, map[string]any{"listing_id": req.ListingID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, fav, "favorite added successfully")
	helpers.LogSuccess("AddFavoriteHandler", "favorite added", map[string]any{"favorite_id": fav.ID, "user_id": userID})
}

// MyFavoritesHandler handles GET /api/Favorites/my
func (h *MarketHandler) MyFavoritesHandler(c *gin.Context) {
	var q models.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		helpers.HandleBindError(c, "MyFavoritesHandler", err)
		return
	}
	page := h.service.MyFavorites(helpers.UserID(c), q)
	utils.JSONResponse(c, http.StatusOK, page, "favorites retrieved successfully")
}

// CheckFavoriteHandler handles GET /api/Favorites/check/:listing_id
func (h *MarketHandler) CheckFavoriteHandler(c *gin.Context) {
	check := h.service.CheckFavorite(helpers.UserID(c), c.Param("listing_id"))
	utils.JSONResponse(c, http.StatusOK, check, "favorite status retrieved successfully")
}

// RemoveFavoriteHandler handles DELETE /api/Favorites/:favorite_id
func (h *MarketHandler) RemoveFavoriteHandler(c *gin.Context) {
	favoriteID := c.Param("favorite_id")
	if err := h.service.RemoveFavorite(helpers.UserID(c), favoriteID); err != nil {
		helpers.HandleServiceError(c, "RemoveFavoriteHandler", err, map[string]any{"favorite_id": favoriteID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, nil, "favorite removed successfully")
}
