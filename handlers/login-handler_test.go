package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Durgeshmauryaji/project-management-app/models"
	"github.com/Durgeshmauryaji/project-management-app/response"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockAuthService struct {
	registerFunc func(ctx context.Context, name, email, password string) error
	loginFunc    func(ctx context.Context, email, password string) (*models.PublicUser, string, error)
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string) error {
	return m.registerFunc(ctx, name, email, password)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*models.PublicUser, string, error) {
	return m.loginFunc(ctx, email, password)
}

func TestRegister_Success(t *testing.T) {
	h := NewLoginHandler(&mockAuthService{
		registerFunc: func(ctx context.Context, name, email, password string) error {
			return nil
		},
	})

	body, _ := json.Marshal(RegisterRequest{Name: "A", Email: "a@x.com", Password: "pw"})
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("got status %d, want 201", rec.Code)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := NewLoginHandler(&mockAuthService{
		registerFunc: func(ctx context.Context, name, email, password string) error {
			return response.NewConflictError("Email already registered")
		},
	})

	body, _ := json.Marshal(RegisterRequest{Name: "A", Email: "a@x.com", Password: "pw"})
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rec.Code)
	}

	var resp map[string]string
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["message"] != "Email already registered" {
		t.Errorf("got message %q", resp["message"])
	}
}

func TestRegister_MalformedBody(t *testing.T) {
	h := NewLoginHandler(&mockAuthService{
		registerFunc: func(ctx context.Context, name, email, password string) error {
			t.Error("service reached with a malformed body")
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rec.Code)
	}
}

func TestLogin_Success(t *testing.T) {
	userID := primitive.NewObjectID()
	h := NewLoginHandler(&mockAuthService{
		loginFunc: func(ctx context.Context, email, password string) (*models.PublicUser, string, error) {
			return &models.PublicUser{ID: userID, Name: "A", Email: "a@x.com"}, "signed-token", nil
		},
	})

	body, _ := json.Marshal(LoginRequest{Email: "a@x.com", Password: "pw"})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	var resp LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("response body is not JSON: %v", err)
	}
	if resp.Token != "signed-token" {
		t.Errorf("got token %q", resp.Token)
	}
	if resp.User.Email != "a@x.com" {
		t.Errorf("got user email %q", resp.User.Email)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	h := NewLoginHandler(&mockAuthService{
		loginFunc: func(ctx context.Context, email, password string) (*models.PublicUser, string, error) {
			return nil, "", response.NewAuthError("Invalid email or password")
		},
	})

	body, _ := json.Marshal(LoginRequest{Email: "a@x.com", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got status %d, want 401", rec.Code)
	}

	var resp map[string]string
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["message"] != "Invalid email or password" {
		t.Errorf("got message %q", resp["message"])
	}
}
