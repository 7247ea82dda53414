package market

import (
	"fmt"
	"strings"

	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/internal/models"
	"ev-marketplace/internal/repository"
	"ev-marketplace/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Roles of member accounts.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Claims identify the caller of an authenticated request.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// Register creates a member account with a bcrypt-hashed password.
func (s *MarketService) Register(req models.RegisterRequest) (models.Profile, error) {
	return s.createUser(req, RoleMember)
}

// CreateAdmin seeds an administrator account.
func (s *MarketService) CreateAdmin(req models.RegisterRequest) (models.Profile, error) {
	return s.createUser(req, RoleAdmin)
}

func (s *MarketService) createUser(req models.RegisterRequest, role string) (models.Profile, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		return models.Profile{}, fmt.Errorf("service: %w - name, email and password are required", marketerrors.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return models.Profile{}, fmt.Errorf("service: hash password: %w", err)
	}

	rec := repository.UserRecord{
		User: models.User{
			ID:        utils.GenerateID(),
			FullName:  strings.TrimSpace(req.FullName),
			Email:     email,
			Phone:     req.Phone,
			Role:      role,
			IsActive:  true,
			CreatedAt: s.now().UTC(),
		},
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(rec); err != nil {
		return models.Profile{}, fmt.Errorf("service: register %s: %w", email, err)
	}
	return rec.Profile(), nil
}

// Login checks credentials and issues a signed HS256 token.
func (s *MarketService) Login(req models.LoginRequest) (models.AuthResult, error) {
	rec, err := s.repo.GetUserByEmail(req.Email)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("service: login: %w", marketerrors.ErrBadCredentials)
	}
	if err := bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(req.Password)); err != nil {
		return models.AuthResult{}, fmt.Errorf("service: login: %w", marketerrors.ErrBadCredentials)
	}
	if !rec.IsActive {
		return models.AuthResult{}, fmt.Errorf("service: login %s: %w - account disabled", rec.ID, marketerrors.ErrForbidden)
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   rec.ID,
		"email": rec.Email,
		"role":  rec.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("service: sign token: %w", err)
	}
	return models.AuthResult{Token: signed, Profile: rec.Profile()}, nil
}

// ParseToken verifies a bearer token and returns its claims.
func (s *MarketService) ParseToken(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return Claims{}, fmt.Errorf("service: parse token: %w", marketerrors.ErrUnauthorized)
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("service: parse token claims: %w", marketerrors.ErrUnauthorized)
	}
	sub, _ := mc["sub"].(string)
	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)
	if sub == "" {
		return Claims{}, fmt.Errorf("service: token without subject: %w", marketerrors.ErrUnauthorized)
	}
	return Claims{UserID: sub, Email: email, Role: role}, nil
}

// Me returns the profile of userID.
func (s *MarketService) Me(userID string) (models.Profile, error) {
	rec, err := s.repo.GetUser(userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("service: me: %w", err)
	}
	return rec.Profile(), nil
}

// Users returns a filtered page of accounts.
func (s *MarketService) Users(filter models.UserFilter) models.Paged[models.User] {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var users []models.User
	for _, rec := range s.repo.ListUsers() {
		if filter.IsActive != nil && rec.IsActive != *filter.IsActive {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(rec.FullName), search) &&
			!strings.Contains(strings.ToLower(rec.Email), search) {
			continue
		}
		users = append(users, rec.User)
	}
	return models.NewPaged(users, filter.PageQuery)
}
