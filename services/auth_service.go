package services

import (
	"errors"
	"fmt"
	"time"

	"pool-engine-go/models"

	"github.com/golang-jwt/jwt/v5"
)

// UserRepository interface for operator account lookups
type UserRepository interface {
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
}

// JWTClaims represents the claims in our JWT token
type JWTClaims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// AuthService authenticates operators. The authenticated identity is what
// the override ledger records as the actor.
type AuthService struct {
	userRepo    UserRepository
	jwtSecret   []byte
	tokenExpiry time.Duration
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenExpiry: 72 * time.Hour,
	}
}

// Login authenticates an operator and returns a JWT token
func (a *AuthService) Login(email, password string) (*models.AuthResponse, error) {
	user, err := a.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := a.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{
		User:  user.ToSafeUser(),
		Token: token,
	}, nil
}

// GenerateToken creates a new JWT token for the user
func (a *AuthService) GenerateToken(user *models.User) (string, error) {
	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "pool-engine-go",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// ValidateToken validates a JWT token and returns the claims
func (a *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GetUserFromToken validates a token and loads the operator it names
func (a *AuthService) GetUserFromToken(tokenString string) (*models.User, error) {
	claims, err := a.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := a.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}
