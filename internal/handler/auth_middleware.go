package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/FredrikEglese/learnApi/internal/apperr"
	"github.com/FredrikEglese/learnApi/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ctxKey string

const ctxUser ctxKey = "user"

// UserFinder resuelve el sub del token a un usuario completo.
type UserFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.UserDoc, error)
}

// Auth valida el token Bearer, resuelve el usuario y lo mete en el
// contexto del request. Cualquier falla es 401.
func Auth(secret string, users UserFinder) func(http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				respondError(w, apperr.Unauthorized("Not authorised for this route"))
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secretBytes, nil
			})
			if err != nil || !token.Valid {
				respondError(w, apperr.Unauthorized("Not authorised for this route"))
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				respondError(w, apperr.Unauthorized("Not authorised for this route"))
				return
			}

			sub, _ := claims["sub"].(string)
			id, err := primitive.ObjectIDFromHex(sub)
			if err != nil {
				respondError(w, apperr.Unauthorized("Not authorised for this route"))
				return
			}

			u, err := users.FindByID(r.Context(), id)
			if err != nil {
				respondError(w, err)
				return
			}
			if u == nil {
				respondError(w, apperr.Unauthorized("Not authorised for this route"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxUser, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles corta con 403 si el role del usuario autenticado no
// está en la lista. Se monta siempre después de Auth.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := map[string]bool{}
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := UserFromContext(r.Context())
			if u == nil || !allowed[u.Role] {
				role := "anonymous"
				if u != nil {
					role = u.Role
				}
				respondError(w, apperr.Forbidden(
					fmt.Sprintf("user role '%s' is not authorised to access this route", role)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext saca el usuario autenticado del contexto.
func UserFromContext(ctx context.Context) *models.UserDoc {
	if u, ok := ctx.Value(ctxUser).(*models.UserDoc); ok {
		return u
	}
	return nil
}
