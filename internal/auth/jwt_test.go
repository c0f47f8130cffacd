package auth

import (
	"net/http/httptest"
	"testing"

	"supplychain-backend/internal/config"
	"supplychain-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-test-secret-test-secret!"

func newProtectedApp(cfg *config.Config, roles ...models.Role) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{JWTMiddleware(cfg)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		identity, err := CurrentIdentity(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"user_id": identity.UserID, "role": identity.Role})
	})
	app.Get("/secure", handlers...)
	return app
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	app := newProtectedApp(cfg)

	token, err := GenerateToken(cfg.JWTSecret, &models.User{
		ID: 7, Email: "w@example.com", Role: models.RoleWarehouse,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareRejectsBadTokens(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	app := newProtectedApp(cfg)

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Token abc",
		"garbage token":  "Bearer not.a.jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/secure", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestJWTMiddlewareRejectsWrongSecret(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	app := newProtectedApp(cfg)

	token, err := GenerateToken("another-secret-another-secret-yes!!!", &models.User{
		ID: 7, Role: models.RoleWarehouse,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoleExactMatch(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	app := newProtectedApp(cfg, models.RoleSupplier)

	supplierToken, err := GenerateToken(cfg.JWTSecret, &models.User{
		ID: 1, Role: models.RoleSupplier,
	})
	require.NoError(t, err)
	retailerToken, err := GenerateToken(cfg.JWTSecret, &models.User{
		ID: 2, Role: models.RoleRetailer,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+supplierToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+retailerToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
