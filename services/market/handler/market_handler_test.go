package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/internal/models"
	"ev-marketplace/services/market/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(helpers.UserIDKey, userID)
		c.Next()
	}
}

func newRouter(t *testing.T) (*gin.Engine, *MockMarketServiceInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := NewMockMarketServiceInterface(ctrl)
	h := NewMarketHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api", asUser("user1"))
	{
		api.POST("/Auth/register", h.RegisterHandler)
		api.POST("/Auth/login", h.LoginHandler)
		api.GET("/Auth/me", h.MeHandler)
		api.GET("/Admin/users", h.UsersHandler)
		api.POST("/Listings", h.CreateListingHandler)
		api.POST("/auction", h.CreateAuctionHandler)
		api.GET("/auction", h.ListAuctionsHandler)
		api.GET("/auction/my", h.MyAuctionsHandler)
		api.GET("/auction/:auction_id", h.GetAuctionHandler)
		api.GET("/auction/:auction_id/bids", h.GetBidsHandler)
		api.GET("/auction/:auction_id/bids/highest", h.GetHighestBidHandler)
		api.POST("/auction/:auction_id/bids", h.PlaceBidHandler)
		api.POST("/Favorites", h.AddFavoriteHandler)
		api.GET("/Favorites/my", h.MyFavoritesHandler)
		api.GET("/Favorites/check/:listing_id", h.CheckFavoriteHandler)
		api.DELETE("/Favorites/:favorite_id", h.RemoveFavoriteHandler)
		api.POST("/Payment", h.CreatePaymentHandler)
		api.POST("/payos/create-payment-link", h.CreatePaymentLinkHandler)
	}
	return router, mockService
}

func do(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func(m *MockMarketServiceInterface)
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data json.RawMessage)
	}{
		{
			name:        "success_valid_bid",
			requestBody: models.PlaceBidRequest{Amount: 100},
			mockSetup: func(m *MockMarketServiceInterface) {
				m.EXPECT().
					PlaceBid("auction1", "user1", 100.0).
					Return(models.Bid{ID: uuid.NewString(), AuctionID: "auction1", BidderID: "user1", Amount: 100, CreatedAt: now}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid recorded successfully",
			validateData: func(t *testing.T, data json.RawMessage) {
				var bid models.Bid
				require.NoError(t, json.Unmarshal(data, &bid))
				_, parseErr := uuid.Parse(bid.ID)
				require.NoError(t, parseErr, "bid id should be a valid UUID")
				require.Equal(t, "auction1", bid.AuctionID)
				require.Equal(t, 100.0, bid.Amount)
			},
		},
		{
			name:           "invalid_json",
			requestBody:    `{invalid json}`,
			mockSetup:      func(*MockMarketServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "invalid_amount_zero",
			requestBody:    models.PlaceBidRequest{Amount: 0},
			mockSetup:      func(*MockMarketServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "negative_amount",
			requestBody:    models.PlaceBidRequest{Amount: -5},
			mockSetup:      func(*MockMarketServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "bid_too_low",
			requestBody: models.PlaceBidRequest{Amount: 50},
			mockSetup: func(m *MockMarketServiceInterface) {
				m.EXPECT().PlaceBid("auction1", "user1", 50.0).
					Return(models.Bid{}, fmt.Errorf("service: %w - current highest bid is 100.00", marketerrors.ErrBidTooLow))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "bid amount too low",
		},
		{
			name:        "auction_closed",
			requestBody: models.PlaceBidRequest{Amount: 500},
			mockSetup: func(m *MockMarketServiceInterface) {
				m.EXPECT().PlaceBid("auction1", "user1", 500.0).Return(models.Bid{}, marketerrors.ErrAuctionClosed)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "auction is not active",
		},
		{
			name:        "auction_not_found",
			requestBody: models.PlaceBidRequest{Amount: 500},
			mockSetup: func(m *MockMarketServiceInterface) {
				m.EXPECT().PlaceBid("auction1", "user1", 500.0).Return(models.Bid{}, marketerrors.ErrAuctionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "auction not found",
		},
		{
			name:        "internal_error",
			requestBody: models.PlaceBidRequest{Amount: 500},
			mockSetup: func(m *MockMarketServiceInterface) {
				m.EXPECT().PlaceBid("auction1", "user1", 500.0).Return(models.Bid{}, errors.New("disk on fire"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			router, mockService := newRouter(t)
			tc.mockSetup(mockService)

			w, env := do(t, router, http.MethodPost, "/api/auction/auction1/bids", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Equal(t, tc.expectedMsg, env.Message)
			require.Equal(t, tc.expectedStatus < 400, env.Success)
			if tc.validateData != nil {
				tc.validateData(t, env.Data)
			}
		})
	}
}

// Test GetBidsHandler
func TestGetBidsHandler(t *testing.T) {
	t.Run("no_bids_is_empty_list", func(t *testing.T) {
		router, mockService := newRouter(t)
		mockService.EXPECT().GetBids("auction1").Return(nil, nil)

		w, env := do(t, router, http.MethodGet, "/api/auction/auction1/bids", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `[]`, string(env.Data))
	})

	t.Run("server_order_preserved", func(t *testing.T) {
		router, mockService := newRouter(t)
		mockService.EXPECT().GetBids("auction1").Return([]models.Bid{{ID: "b2", Amount: 2}, {ID: "b1", Amount: 1}}, nil)

		_, env := do(t, router, http.MethodGet, "/api/auction/auction1/bids", nil)
		var bids []models.Bid
		require.NoError(t, json.Unmarshal(env.Data, &bids))
		require.Equal(t, "b2", bids[0].ID)
	})

	t.Run("unknown_auction", func(t *testing.T) {
		router, mockService := newRouter(t)
		mockService.EXPECT().GetBids("nope").Return(nil, marketerrors.ErrAuctionNotFound)

		w, env := do(t, router, http.MethodGet, "/api/auction/nope/bids", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		require.False(t, env.Success)
	})
}

// Test GetHighestBidHandler
func TestGetHighestBidHandler(t *testing.T) {
	router, mockService := newRouter(t)
	mockService.EXPECT().GetHighestBid("auction1").Return(models.Bid{}, marketerrors.ErrNoBids)

	w, env := do(t, router, http.MethodGet, "/api/auction/auction1/bids/highest", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "no bids found for auction", env.Message)
}

func TestAuthHandlers(t *testing.T) {
	t.Run("register_conflict", func(t *testing.T) {
		router, mockService := newRouter(t)
		req := models.RegisterRequest{FullName: "Lan", Email: "lan@example.com", Password: "secret1"}
		mockService.EXPECT().Register(req).Return(models.Profile{}, marketerrors.ErrUserExists)

		w, env := do(t, router, http.MethodPost, "/api/Auth/register", req)
		require.Equal(t, http.StatusConflict, w.Code)
		require.Equal(t, "email is already registered", env.Message)
	})

	t.Run("register_bad_email", func(t *testing.T) {
		router, _ := newRouter(t)
		w, _ := do(t, router, http.MethodPost, "/api/Auth/register", models.RegisterRequest{FullName: "Lan", Email: "nope", Password: "secret1"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("login_success", func(t *testing.T) {
		router, mockService := newRouter(t)
		req := models.LoginRequest{Email: "lan@example.com", Password: "secret1"}
		mockService.EXPECT().Login(req).Return(models.AuthResult{Token: "tok", Profile: models.Profile{ID: "user1"}}, nil)

		w, env := do(t, router, http.MethodPost, "/api/Auth/login", req)
		require.Equal(t, http.StatusOK, w.Code)
		var res models.AuthResult
		require.NoError(t, json.Unmarshal(env.Data, &res))
		require.Equal(t, "tok", res.Token)
	})

	t.Run("login_bad_credentials", func(t *testing.T) {
		router, mockService := newRouter(t)
		mockService.EXPECT().Login(gomock.Any()).Return(models.AuthResult{}, marketerrors.ErrBadCredentials)

		w, _ := do(t, router, http.MethodPost, "/api/Auth/login", models.LoginRequest{Email: "a@b.c", Password: "x"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("me_uses_caller", func(t *testing.T) {
		router, mockService := newRouter(t)
		mockService.EXPECT().Me("user1").Return(models.Profile{ID: "user1", Email: "lan@example.com"}, nil)

		w, _ := do(t, router, http.MethodGet, "/api/Auth/me", nil)
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestListHandlersBindPaging(t *testing.T) {
	router, mockService := newRouter(t)
	mockService.EXPECT().ListAuctions(models.PageQuery{Page: 2, PageSize: 5}).Return(models.Paged[models.Auction]{Page: 2, PageSize: 5})
	mockService.EXPECT().MyAuctions("user1", models.PageQuery{}).Return(models.Paged[models.Auction]{})
	mockService.EXPECT().MyFavorites("user1", models.PageQuery{Page: 1, PageSize: 12}).Return(models.Paged[models.Favorite]{})

	active := true
	mockService.EXPECT().Users(models.UserFilter{PageQuery: models.PageQuery{Page: 1}, Search: "lan", IsActive: &active}).
		Return(models.Paged[models.User]{Items: []models.User{{ID: "u1"}}, TotalItems: 1})

	w, _ := do(t, router, http.MethodGet, "/api/auction?page=2&pageSize=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, router, http.MethodGet, "/api/auction/my", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, router, http.MethodGet, "/api/Favorites/my?page=1&pageSize=12", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, env := do(t, router, http.MethodGet, "/api/Admin/users?page=1&search=lan&isActive=true", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page models.Paged[models.User]
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Equal(t, 1, page.TotalItems)
}

func TestFavoriteHandlers(t *testing.T) {
	router, mockService := newRouter(t)
	mockService.EXPECT().AddFavorite("user1", "listing1").Return(models.Favorite{ID: "f1", ListingID: "listing1"}, nil)
	mockService.EXPECT().CheckFavorite("user1", "listing1").Return(models.FavoriteCheck{IsFavorite: true, FavoriteID: "f1"})
	mockService.EXPECT().RemoveFavorite("user1", "f1").Return(nil)
	mockService.EXPECT().RemoveFavorite("user1", "f1").Return(marketerrors.ErrFavoriteNotFound)

	w, _ := do(t, router, http.MethodPost, "/api/Favorites", models.CreateFavoriteRequest{ListingID: "listing1"})
	require.Equal(t, http.StatusCreated, w.Code)

	_, env := do(t, router, http.MethodGet, "/api/Favorites/check/listing1", nil)
	require.JSONEq(t, `{"isFavorite":true,"favoriteId":"f1"}`, string(env.Data))

	w, _ = do(t, router, http.MethodDelete, "/api/Favorites/f1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, router, http.MethodDelete, "/api/Favorites/f1", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, router, http.MethodPost, "/api/Favorites", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListingAndPaymentHandlers(t *testing.T) {
	router, mockService := newRouter(t)

	listingReq := models.CreateListingRequest{
		Category: models.CategoryCar, Title: "VF e34", Price: 5e8,
		Images: []models.ListingImage{{ID: "i1", Data: "data:image/jpeg;base64,AA==", IsPrimary: true}},
	}
	mockService.EXPECT().CreateListing("user1", listingReq).Return(models.Listing{ID: "L1", Title: "VF e34"}, nil)
	w, _ := do(t, router, http.MethodPost, "/api/Listings", listingReq)
	require.Equal(t, http.StatusCreated, w.Code)

	listingReq.Images = nil
	w, _ = do(t, router, http.MethodPost, "/api/Listings", listingReq)
	require.Equal(t, http.StatusBadRequest, w.Code, "images are required")

	payReq := models.CreatePaymentRequest{ListingID: "L1", Amount: 5e8, PaymentMethod: "payos"}
	mockService.EXPECT().CreatePayment("user1", payReq).Return(models.Order{ID: "o1", Status: "pending"}, nil)
	w, _ = do(t, router, http.MethodPost, "/api/Payment", payReq)
	require.Equal(t, http.StatusCreated, w.Code)

	linkReq := models.PaymentLinkRequest{OrderID: "o1", Amount: 5e8}
	mockService.EXPECT().CreatePaymentLink("user1", linkReq).Return(models.PaymentLink{}, marketerrors.ErrForbidden)
	w, env := do(t, router, http.MethodPost, "/api/payos/create-payment-link", linkReq)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "not allowed", env.Message)
}

func TestAuctionHandlers(t *testing.T) {
	router, mockService := newRouter(t)
	start := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	req := models.CreateAuctionRequest{ListingID: "L1", StartingPrice: 100, StartTime: start, EndTime: start.Add(time.Hour)}

	mockService.EXPECT().CreateAuction("user1", req).Return(models.Auction{ID: "a1", ListingID: "L1"}, nil)
	mockService.EXPECT().GetAuction("a1").Return(models.Auction{ID: "a1"}, nil)
	mockService.EXPECT().GetAuction("zz").Return(models.Auction{}, marketerrors.ErrAuctionNotFound)

	w, _ := do(t, router, http.MethodPost, "/api/auction", req)
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = do(t, router, http.MethodGet, "/api/auction/a1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, router, http.MethodGet, "/api/auction/zz", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
