package service

import (
	"context"
	"time"

	"github.com/FredrikEglese/learnApi/internal/apperr"
	"github.com/FredrikEglese/learnApi/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users     UserStore
	jwtSecret []byte
	jwtExpire time.Duration
}

func NewAuthService(users UserStore, secret string, expire time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: []byte(secret), jwtExpire: expire}
}

type RegisterData struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Register crea un usuario nuevo y devuelve el token de sesión.
// El role viene del body, pero nadie se registra a sí mismo como admin.
func (s *AuthService) Register(ctx context.Context, data RegisterData) (*models.UserDoc, string, error) {
	if data.Name == "" {
		return nil, "", apperr.Validationf("Please enter a name")
	}
	if !validEmail(data.Email) {
		return nil, "", apperr.Validationf("Please use a valid email address")
	}
	if len(data.Password) < 6 {
		return nil, "", apperr.Validationf("Password must be at least 6 characters")
	}

	role := data.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RolePublisher {
		return nil, "", apperr.Validationf("invalid role (must be user|publisher)")
	}

	existing, err := s.users.FindByEmail(ctx, data.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", apperr.Validationf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &models.UserDoc{
		ID:           primitive.NewObjectID(),
		Name:         data.Name,
		Email:        data.Email,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Insert(ctx, u); err != nil {
		// el índice único es quien manda si dos registros corren a la vez
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", apperr.Validationf("email already registered")
		}
		return nil, "", err
	}

	token, err := s.SignToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login valida credenciales. Email desconocido y password incorrecta
// devuelven exactamente el mismo error, para no filtrar qué emails existen.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.UserDoc, error) {
	if email == "" || password == "" {
		return "", nil, apperr.Validationf("Please provide an email and password")
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, apperr.Unauthorized("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperr.Unauthorized("Invalid credentials")
	}

	token, err := s.SignToken(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// SignToken firma un JWT HS256 con el id y el role del usuario.
func (s *AuthService) SignToken(u *models.UserDoc) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.ID.Hex(),
		"role": u.Role,
		"exp":  time.Now().Add(s.jwtExpire).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}
