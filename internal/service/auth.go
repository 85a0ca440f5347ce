package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/msomdec/mercado-social/internal/domain"
	"github.com/msomdec/mercado-social/internal/validation"
)

const tokenTTL = 24 * time.Hour

// AuthService handles user registration, login, and JWT token operations.
type AuthService struct {
	users      domain.UserRepository
	validate   *validation.Validator
	jwtSecret  []byte
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, validate *validation.Validator, jwtSecret string, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		validate:   validate,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
	}
}

// RegisterInput is the account data submitted at sign-up. The store fields
// are only used for business accounts.
type RegisterInput struct {
	Username      string `json:"username" validate:"required"`
	Email         string `json:"email" validate:"required"`
	Password      string `json:"password" validate:"required"`
	AccountKind   string `json:"accountKind" validate:"required,oneof=PERSONAL BUSINESS"`
	Name          string `json:"name"`
	Bio           string `json:"bio"`
	StoreName     string `json:"storeName"`
	StoreCity     string `json:"storeCity"`
	StoreDistrict string `json:"storeDistrict"`
	StoreAddress  string `json:"storeAddress"`
	StorePhone    string `json:"storePhone"`
}

// Register creates a new account. Business accounts get their store in the
// same write; the returned store is nil for personal accounts.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, *domain.Store, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		AccountKind:  domain.AccountKind(in.AccountKind),
		Name:         in.Name,
		Bio:          in.Bio,
	}

	var store *domain.Store
	if user.AccountKind == domain.AccountBusiness {
		store = &domain.Store{
			Name:     in.StoreName,
			City:     in.StoreCity,
			District: in.StoreDistrict,
			Address:  in.StoreAddress,
			Phone:    in.StorePhone,
		}
	}

	if err := s.users.Create(ctx, user, store); err != nil {
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	return user, store, nil
}

// Login verifies credentials and returns the user with a signed JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.ErrUnauthorized
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate jwt: %w", err)
	}

	return user, token, nil
}

// ValidateToken parses and validates a JWT token string.
// Returns the user ID from the sub claim.
func (s *AuthService) ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return 0, domain.ErrUnauthorized
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	return userID, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":          strconv.FormatInt(user.ID, 10),
		"username":     user.Username,
		"account_kind": string(user.AccountKind),
		"iat":          now.Unix(),
		"exp":          now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
