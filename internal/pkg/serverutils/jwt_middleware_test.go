package serverutils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func userIdApp(claim interface{}) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Use(func(ctx *fiber.Ctx) error {
		if claim != nil {
			ctx.Locals("user_id", claim)
		}
		return ctx.Next()
	})
	app.Get("/whoami", func(ctx *fiber.Ctx) error {
		userId, err := CurrentUserId(ctx)
		if err != nil {
			return err
		}
		return ctx.SendString(userId.String())
	})
	return app
}

func TestCurrentUserIdValidClaim(t *testing.T) {
	userId := uuid.New()
	app := userIdApp(userId.String())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestCurrentUserIdRejectsMalformedClaim(t *testing.T) {
	app := userIdApp("not-a-uuid")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestCurrentUserIdRejectsMissingClaim(t *testing.T) {
	app := userIdApp(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}
