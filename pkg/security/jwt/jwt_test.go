package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusjobs/board/pkg/identity"
)

const (
	testSecret = "test-secret"
	testIssuer = "campus-board"
)

func testApp(mw ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append(mw, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": c.Locals("userId"),
			"role":   c.Locals("role"),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

func request(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_Roundtrip(t *testing.T) {
	gen := NewGenerator(testSecret, testIssuer, time.Hour)
	user := identity.User{ID: uuid.New(), Role: identity.RoleFaculty}
	token, err := gen.Generate(context.Background(), user)
	require.NoError(t, err)

	app := testApp(NewAuthMiddleware(testSecret, testIssuer))

	resp := request(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Raw token without the Bearer prefix is accepted too.
	resp = request(t, app, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	gen := NewGenerator(testSecret, testIssuer, time.Hour)
	token, err := gen.Generate(context.Background(), identity.User{ID: uuid.New(), Role: identity.RoleStudent})
	require.NoError(t, err)

	expired, err := NewGenerator(testSecret, testIssuer, -time.Minute).
		Generate(context.Background(), identity.User{ID: uuid.New(), Role: identity.RoleStudent})
	require.NoError(t, err)

	otherIssuer, err := NewGenerator(testSecret, "someone-else", time.Hour).
		Generate(context.Background(), identity.User{ID: uuid.New(), Role: identity.RoleStudent})
	require.NoError(t, err)

	app := testApp(NewAuthMiddleware(testSecret, testIssuer))

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", func() string {
			tok, _ := NewGenerator("other-secret", testIssuer, time.Hour).
				Generate(context.Background(), identity.User{ID: uuid.New()})
			return "Bearer " + tok
		}()},
		{"expired", "Bearer " + expired},
		{"wrong issuer", "Bearer " + otherIssuer},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp := request(t, app, c.header)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}

	// Sanity: the valid token still passes.
	resp := request(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	gen := NewGenerator(testSecret, testIssuer, time.Hour)
	auth := NewAuthMiddleware(testSecret, testIssuer)

	tokenFor := func(role identity.Role) string {
		tok, err := gen.Generate(context.Background(), identity.User{ID: uuid.New(), Role: role})
		require.NoError(t, err)
		return "Bearer " + tok
	}

	app := testApp(auth, RequireRole(identity.RoleAdmin, identity.RoleStaff))

	resp := request(t, app, tokenFor(identity.RoleAdmin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = request(t, app, tokenFor(identity.RoleStaff))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = request(t, app, tokenFor(identity.RoleStudent))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = request(t, app, tokenFor(identity.RoleRep))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
