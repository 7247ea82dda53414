package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	market "ev-marketplace/internal/marketService"
	"ev-marketplace/internal/models"
	"ev-marketplace/internal/repository"
	"ev-marketplace/internal/server"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "integration-secret"

// SetupTestRouter initializes the router with an in-memory repository for integration testing.
func SetupTestRouter() (*gin.Engine, *market.MarketService) {
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryRepo()
	service := market.NewMarketService(repo, testSecret, time.Hour, market.WithBcryptCost(bcrypt.MinCost))
	return server.SetupRouter(service), service
}

// SetupTestServer serves the router over a real listener for client tests.
func SetupTestServer(t *testing.T) (baseURL string, service *market.MarketService) {
	t.Helper()
	router, service := SetupTestRouter()
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts.URL + "/api", service
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the envelope.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// RegisterAndLogin creates a member through the API and returns its token.
func RegisterAndLogin(t *testing.T, router *gin.Engine, name, email string) string {
	t.Helper()
	req := models.RegisterRequest{FullName: name, Email: email, Password: "secret123"}
	if _, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/api/Auth/register", "", req); w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d", email, w.Code)
	}
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/api/Auth/login", "", models.LoginRequest{Email: email, Password: req.Password})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d", email, w.Code)
	}
	return resp["data"].(map[string]any)["token"].(string)
}

// SeedAuction opens an active auction owned by a fresh seller.
func SeedAuction(t *testing.T, service *market.MarketService, sellerEmail string, startingPrice float64) models.Auction {
	t.Helper()
	seller, err := service.Register(models.RegisterRequest{FullName: "Seller", Email: sellerEmail, Password: "secret123"})
	if err != nil {
		t.Fatalf("register seller: %v", err)
	}
	l, err := service.CreateListing(seller.ID, models.CreateListingRequest{
		Category: models.CategoryEBike,
		Title:    "Folding e-bike",
		Price:    startingPrice,
		EBike:    &models.EBikeSpec{MotorPowerW: 350, RangeKm: 40},
	})
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	now := time.Now()
	a, err := service.CreateAuction(seller.ID, models.CreateAuctionRequest{
		ListingID:     l.ID,
		StartingPrice: startingPrice,
		StartTime:     now.Add(-time.Minute),
		EndTime:       now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create auction: %v", err)
	}
	return a
}
