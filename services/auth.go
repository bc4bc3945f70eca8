package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/chandrashekar-chandu/nature-market/models"
	"github.com/chandrashekar-chandu/nature-market/store"
)

const tokenLifetime = 7 * 24 * time.Hour

// AuthService registers users and issues/parses the bearer tokens the
// middleware resolves into a (userId, role) pair.
type AuthService struct {
	users  store.UserStore
	secret []byte
	now    func() time.Time
}

func NewAuthService(users store.UserStore, secret []byte) *AuthService {
	return &AuthService{users: users, secret: secret, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}
	if !errors.Is(err, store.ErrNoDocument) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleUser,
		Cart:     []models.CartLine{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns a signed token. Wrong email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNoDocument) {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	}
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	}

	claims := jwt.MapClaims{
		"id":   user.ID.Hex(),
		"role": string(user.Role),
		"exp":  s.now().Add(tokenLifetime).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ParseToken validates a bearer token and returns the subject it carries.
func (s *AuthService) ParseToken(tokenString string) (Subject, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Subject{}, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}

	id, _ := claims["id"].(string)
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Subject{}, fmt.Errorf("%w: invalid token subject", ErrUnauthenticated)
	}
	role, _ := claims["role"].(string)
	return Subject{UserID: userID, Role: models.Role(role)}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNoDocument) {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
