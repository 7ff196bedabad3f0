package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/FredrikEglese/learnApi/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

type fakeUserFinder struct {
	user *models.UserDoc
}

func (f *fakeUserFinder) FindByID(_ context.Context, id primitive.ObjectID) (*models.UserDoc, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
}

func signToken(t *testing.T, sub string, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  exp.Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func protectedRouter(users UserFinder, roles ...string) http.Handler {
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondData(w, http.StatusOK, map[string]any{"ok": true})
	})
	if len(roles) > 0 {
		h = RequireRoles(roles...)(h)
	}
	return Auth(testSecret, users)(h)
}

func doRequest(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMissingHeader(t *testing.T) {
	h := protectedRouter(&fakeUserFinder{})

	w := doRequest(h, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not authorised for this route", body["error"])
}

func TestAuthMalformedToken(t *testing.T) {
	h := protectedRouter(&fakeUserFinder{})

	w := doRequest(h, "Bearer not.a.jwt")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthExpiredToken(t *testing.T) {
	u := &models.UserDoc{ID: primitive.NewObjectID(), Role: models.RolePublisher}
	h := protectedRouter(&fakeUserFinder{user: u})

	token := signToken(t, u.ID.Hex(), u.Role, time.Now().Add(-time.Hour))
	w := doRequest(h, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthUnknownUser(t *testing.T) {
	h := protectedRouter(&fakeUserFinder{})

	token := signToken(t, primitive.NewObjectID().Hex(), models.RoleUser, time.Now().Add(time.Hour))
	w := doRequest(h, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthValidTokenPasses(t *testing.T) {
	u := &models.UserDoc{ID: primitive.NewObjectID(), Role: models.RolePublisher}
	h := protectedRouter(&fakeUserFinder{user: u})

	token := signToken(t, u.ID.Hex(), u.Role, time.Now().Add(time.Hour))
	w := doRequest(h, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, true, body["success"])
}

func TestRequireRolesForbidsWrongRole(t *testing.T) {
	u := &models.UserDoc{ID: primitive.NewObjectID(), Role: models.RoleUser}
	h := protectedRouter(&fakeUserFinder{user: u}, models.RolePublisher, models.RoleAdmin)

	token := signToken(t, u.ID.Hex(), u.Role, time.Now().Add(time.Hour))
	w := doRequest(h, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, "user role 'user' is not authorised to access this route", body["error"])
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	u := &models.UserDoc{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	h := protectedRouter(&fakeUserFinder{user: u}, models.RolePublisher, models.RoleAdmin)

	token := signToken(t, u.ID.Hex(), u.Role, time.Now().Add(time.Hour))
	w := doRequest(h, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
}
