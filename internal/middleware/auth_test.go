package middleware

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/models"
)

func TestGetUserFromContext(t *testing.T) {
	app := fiber.New()
	c := app.AcquireCtx(&fasthttp.RequestCtx{})
	defer app.ReleaseCtx(c)

	// No locals at all: must error, not panic.
	if _, _, err := GetUserFromContext(c); err == nil {
		t.Fatal("expected error without auth locals")
	}

	c.Locals("userID", uint(7))
	if _, _, err := GetUserFromContext(c); err == nil {
		t.Fatal("expected error without role local")
	}

	c.Locals("userRole", models.RoleKasir)
	userID, role, err := GetUserFromContext(c)
	if err != nil {
		t.Fatalf("GetUserFromContext: %v", err)
	}
	if userID != 7 || role != models.RoleKasir {
		t.Errorf("got userID=%d role=%s, want 7 kasir", userID, role)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := HashPassword("rahasia-kasir")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hashed == "rahasia-kasir" {
		t.Fatal("password not hashed")
	}

	if err := CheckPassword("rahasia-kasir", hashed); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := CheckPassword("salah", hashed); err == nil {
		t.Error("wrong password accepted")
	}
}
