package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"attendance-backend/internal/attendance"
	"attendance-backend/internal/auth"
	"attendance-backend/internal/config"
	"attendance-backend/internal/database/dbtest"

	"github.com/gofiber/fiber/v2"
)

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	auth.BcryptCost = 4
	cfg := &config.Config{
		JWTSecret:   strings.Repeat("z", 32),
		TokenTTL:    7 * 24 * time.Hour,
		CORSOrigins: "http://localhost:3000",
	}
	now := func() time.Time { return time.Date(2026, time.February, 3, 9, 0, 0, 0, time.Local) }
	return New(cfg, dbtest.New(t), Options{
		AttendanceOptions: []attendance.Option{attendance.WithClock(now)},
	})
}

func call(t *testing.T, app *fiber.App, method, path, token, body string) (int, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestManagerFlowEndToEnd(t *testing.T) {
	app := newTestServer(t)

	status, _ := call(t, app, "GET", "/", "", "")
	if status != http.StatusOK {
		t.Fatalf("health = %d", status)
	}

	status, _ = call(t, app, "POST", "/api/manager/register", "", `{"name":"Boss","email":"boss@example.com","password":"boss-pw"}`)
	if status != http.StatusCreated {
		t.Fatalf("register = %d", status)
	}
	status, _ = call(t, app, "POST", "/api/manager/register", "", `{"name":"Boss2","email":"boss@example.com","password":"x"}`)
	if status != http.StatusBadRequest {
		t.Errorf("duplicate register = %d", status)
	}

	status, body := call(t, app, "POST", "/api/manager/login", "", `{"email":"boss@example.com","password":"boss-pw"}`)
	if status != http.StatusOK {
		t.Fatalf("login = %d", status)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("no token")
	}

	// korumalı uçlar token ister
	status, _ = call(t, app, "GET", "/api/attendance/dashboard", "", "")
	if status != http.StatusUnauthorized {
		t.Errorf("dashboard without token = %d", status)
	}

	status, _ = call(t, app, "POST", "/api/users/adduser", token, `{"name":"Ann","email":"ann@example.com","password":"ann-pw"}`)
	if status != http.StatusCreated {
		t.Fatalf("adduser = %d", status)
	}

	status, body = call(t, app, "POST", "/api/attendance/checkin", "", `{"password":"ann-pw"}`)
	if status != http.StatusOK || body["action"] != "checkin" {
		t.Fatalf("checkin = %d %v", status, body)
	}
	// yönetici şifresi kiosk'ta çalışmaz
	status, _ = call(t, app, "POST", "/api/attendance/checkin", "", `{"password":"boss-pw"}`)
	if status != http.StatusUnauthorized {
		t.Errorf("manager checkin = %d", status)
	}

	status, body = call(t, app, "GET", "/api/attendance/dashboard", token, "")
	if status != http.StatusOK {
		t.Fatalf("dashboard = %d", status)
	}
	rows := body["attendance"].([]interface{})
	if len(rows) != 1 || rows[0].(map[string]interface{})["status"] != "Present" {
		t.Errorf("dashboard rows = %v", rows)
	}

	status, body = call(t, app, "GET", "/api/attendance/history?month=2&year=2026", token, "")
	if status != http.StatusOK || body["totalDays"] != float64(28) {
		t.Errorf("history = %d %v", status, body)
	}

	status, _ = call(t, app, "PUT", "/api/attendance/month-settings", token, `{"month":"02","year":"2026","sundays":4,"saturdays":1}`)
	if status != http.StatusOK {
		t.Errorf("month-settings put = %d", status)
	}

	status, body = call(t, app, "GET", "/api/manager/me", token, "")
	if status != http.StatusOK || body["email"] != "boss@example.com" {
		t.Errorf("me = %d %v", status, body)
	}
}
