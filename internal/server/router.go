package server

import (
	"sync"

	"ev-marketplace/internal/models"
	handler "ev-marketplace/services/market/handler"
	"ev-marketplace/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MarketService is everything the router needs from the business layer.
type MarketService interface {
	handler.MarketServiceInterface
	TokenParser
}

var registerRules sync.Once

// SetupRouter configures all Gin routes for the application
func SetupRouter(marketService MarketService) *gin.Engine {
	registerRules.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			models.RegisterRules(v)
		} else {
			utils.Warn("gin validator is not go-playground; listing rules not registered", nil)
		}
	})

	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	h := handler.NewMarketHandler(marketService)
	auth := AuthMiddleware(marketService)

	api := router.Group("/api")

	public := api.Group("/Auth")
	{
		public.POST("/register", h.RegisterHandler)
		public.POST("/login", h.LoginHandler)
	}
	api.GET("/Auth/me", auth, h.MeHandler)

	auctions := api.Group("/auction")
	{
		auctions.GET("", h.ListAuctionsHandler)
		auctions.GET("/:auction_id", h.GetAuctionHandler)
		auctions.GET("/:auction_id/bids", h.GetBidsHandler)
		auctions.GET("/:auction_id/bids/highest", h.GetHighestBidHandler)

		auctions.POST("", auth, h.CreateAuctionHandler)
		auctions.GET("/my", auth, h.MyAuctionsHandler)
		auctions.POST("/:auction_id/bids", auth, h.PlaceBidHandler)
	}

	api.POST("/Listings", auth, h.CreateListingHandler)

	favorites := api.Group("/Favorites", auth)
	{
		favorites.POST("", h.AddFavoriteHandler)
		favorites.GET("/my", h.MyFavoritesHandler)
		favorites.GET("/check/:listing_id", h.CheckFavoriteHandler)
		favorites.DELETE("/:favorite_id", h.RemoveFavoriteHandler)
	}

	api.POST("/Payment", auth, h.CreatePaymentHandler)
	api.POST("/payos/create-payment-link", auth, h.CreatePaymentLinkHandler)

	admin := api.Group("/Admin", auth, AdminOnly)
	{
		admin.GET("/users", h.UsersHandler)
	}

	return router
}
