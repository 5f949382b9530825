package registration

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/registra-api/registra/internal/logging"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	svc := NewService(NewMemoryRepository())
	h := NewHandler(svc, logging.Discard())

	app := fiber.New()
	app.Post("/api/users", h.Register)
	app.Get("/api/users", h.List)
	return app
}

func postUser(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/api/users", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(payload, &out); err != nil {
		t.Fatalf("decode body %q: %v", payload, err)
	}
	return resp.StatusCode, out
}

func TestRegisterCreated(t *testing.T) {
	app := setupTestApp(t)

	status, body := postUser(t, app, `{"nombre":"Juan","apellido":"Pérez","email":"juan@example.com","telefono":"+34600123456","pais":"España"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", status, body)
	}
	if body["id"] == nil || body["id"].(float64) == 0 {
		t.Fatalf("expected a generated id, got %v", body["id"])
	}
	if body["email"] != "juan@example.com" {
		t.Fatalf("expected email echoed, got %v", body["email"])
	}
}

func TestRegisterValidationFailure(t *testing.T) {
	app := setupTestApp(t)

	status, body := postUser(t, app, `{"nombre":"Ju4n!","apellido":"Pérez","email":"juan@example.com"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%v)", status, body)
	}
	msgs, ok := body["errors"].([]any)
	if !ok || len(msgs) == 0 {
		t.Fatalf("expected validation messages, got %v", body)
	}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	app := setupTestApp(t)

	if status, body := postUser(t, app, `{"nombre":"Ana","apellido":"García","email":"ana@example.com"}`); status != fiber.StatusCreated {
		t.Fatalf("first registration: expected 201, got %d (%v)", status, body)
	}

	status, body := postUser(t, app, `{"nombre":"Otra","apellido":"Persona","email":"ana@example.com"}`)
	if status != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d (%v)", status, body)
	}
	if body["error"] == "" {
		t.Fatal("expected a generic duplicate message")
	}

	_, list := getUsers(t, app)
	if count := list["count"].(float64); count != 1 {
		t.Fatalf("expected 1 row after conflict, got %v", count)
	}
}

func getUsers(t *testing.T, app *fiber.App) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/users", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	return resp.StatusCode, out
}

func TestListingContainsCreatedRegistrant(t *testing.T) {
	app := setupTestApp(t)

	_, created := postUser(t, app, `{"nombre":"Juan","apellido":"Pérez","email":"juan@example.com"}`)
	wantID := created["id"].(float64)

	status, list := getUsers(t, app)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	data := list["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("expected one row, got %d", len(data))
	}
	row := data[0].(map[string]any)
	if row["id"].(float64) != wantID {
		t.Fatalf("expected id %v in listing, got %v", wantID, row["id"])
	}
	if row["fecha_registro"] == "" {
		t.Fatal("expected a formatted registration timestamp")
	}
}

func TestListingOrderedMostRecentFirst(t *testing.T) {
	app := setupTestApp(t)

	for _, email := range []string{"uno@example.com", "dos@example.com"} {
		if status, body := postUser(t, app, `{"nombre":"Ana","apellido":"García","email":"`+email+`"}`); status != fiber.StatusCreated {
			t.Fatalf("register %s: expected 201, got %d (%v)", email, status, body)
		}
		time.Sleep(2 * time.Millisecond)
	}

	_, list := getUsers(t, app)
	data := list["data"].([]any)
	if len(data) != 2 {
		t.Fatalf("expected two rows, got %d", len(data))
	}
	if first := data[0].(map[string]any); first["email"] != "dos@example.com" {
		t.Fatalf("expected most recent registrant first, got %v", first["email"])
	}
}

func TestRegisterMalformedBody(t *testing.T) {
	app := setupTestApp(t)

	status, body := postUser(t, app, `{"nombre":`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d (%v)", status, body)
	}
}
