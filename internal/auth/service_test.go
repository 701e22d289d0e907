package auth

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"attendance-backend/internal/apperr"
	"attendance-backend/internal/config"
	"attendance-backend/internal/database/dbtest"
	"attendance-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	BcryptCost = 4
	db := dbtest.New(t)
	return NewService(db, &config.Config{JWTSecret: testSecret, TokenTTL: 7 * 24 * time.Hour})
}

func TestRegisterManager(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m, err := svc.RegisterManager(ctx, RegisterInput{Name: "Boss", Email: " Boss@Example.com ", Password: "pw"})
	if err != nil {
		t.Fatalf("RegisterManager: %v", err)
	}
	if m.Role != models.RoleManager || m.Email != "boss@example.com" {
		t.Errorf("manager = %+v", m)
	}
	if m.PasswordHash == "pw" || !CheckPassword(m.PasswordHash, "pw") {
		t.Error("password not hashed correctly")
	}

	tests := []struct {
		name string
		in   RegisterInput
		code string
	}{
		{"duplicate email", RegisterInput{Name: "Other", Email: "boss@example.com", Password: "x"}, apperr.CodeEmailInUse},
		{"missing name", RegisterInput{Name: "", Email: "a@b.c", Password: "x"}, apperr.CodeMissingFields},
		{"password over 72 bytes", RegisterInput{Name: "Long", Email: "long@example.com", Password: strings.Repeat("p", 80)}, apperr.CodeInvalidParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterManager(ctx, tt.in)
			if apperr.CodeOf(err) != tt.code {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRegisterRejectsEmailOfEmployee(t *testing.T) {
	svc := newTestService(t)
	emp := models.User{Name: "Emp", Email: "emp@example.com", PasswordHash: "h", Role: models.RoleUser}
	if err := svc.db.Create(&emp).Error; err != nil {
		t.Fatal(err)
	}

	_, err := svc.RegisterManager(context.Background(), RegisterInput{Name: "M", Email: "emp@example.com", Password: "x"})
	if apperr.CodeOf(err) != apperr.CodeEmailInUse {
		t.Errorf("err = %v, want EMAIL_IN_USE", err)
	}
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RegisterManager(ctx, RegisterInput{Name: "Boss", Email: "boss@example.com", Password: "pw"}); err != nil {
		t.Fatal(err)
	}
	hash, _ := HashPassword("emp-pw")
	emp := models.User{Name: "Emp", Email: "emp@example.com", PasswordHash: hash, Role: models.RoleUser}
	if err := svc.db.Create(&emp).Error; err != nil {
		t.Fatal(err)
	}

	token, m, err := svc.Login(ctx, "BOSS@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != m.ID || claims.Role != models.RoleManager {
		t.Errorf("claims = %+v", claims)
	}

	tests := []struct {
		name, email, pw, code string
	}{
		{"wrong password", "boss@example.com", "nope", apperr.CodeInvalidCredentials},
		{"unknown email", "ghost@example.com", "pw", apperr.CodeInvalidCredentials},
		{"employee cannot log in", "emp@example.com", "emp-pw", apperr.CodeInvalidCredentials},
		{"missing fields", "", "", apperr.CodeMissingFields},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(ctx, tt.email, tt.pw)
			if apperr.CodeOf(err) != tt.code {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func newTestApp(svc *Service) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})
	app.Post("/manager/register", RegisterManagerHandler(svc))
	app.Post("/manager/login", LoginHandler(svc))

	protected := app.Group("", JWTMiddleware(testSecret), RequireRole(models.RoleManager))
	protected.Get("/manager/me", MeHandler(svc))
	return app
}

func TestManagerEndpoints(t *testing.T) {
	svc := newTestService(t)
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/manager/register", strings.NewReader(`{"name":"Boss","email":"boss@example.com","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register status = %d", resp.StatusCode)
	}

	req = httptest.NewRequest("POST", "/manager/login", strings.NewReader(`{"email":"boss@example.com","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	var login struct {
		Token   string `json:"token"`
		Manager struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"manager"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		t.Fatal(err)
	}
	if login.Token == "" || login.Manager.Role != "manager" {
		t.Fatalf("login body = %+v", login)
	}

	req = httptest.NewRequest("GET", "/manager/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("me status = %d", resp.StatusCode)
	}

	req = httptest.NewRequest("POST", "/manager/login", strings.NewReader(`{"email":"boss@example.com","password":"bad"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", resp.StatusCode)
	}
}

func TestMiddlewareRejects(t *testing.T) {
	svc := newTestService(t)
	app := newTestApp(svc)

	empToken, err := GenerateToken(testSecret, time.Hour, &models.User{ID: 9, Role: models.RoleUser}, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic abc", fiber.StatusUnauthorized},
		{"bad token", "Bearer garbage", fiber.StatusUnauthorized},
		{"wrong role", "Bearer " + empToken, fiber.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/manager/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}
