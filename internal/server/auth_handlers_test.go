package server

import (
	"net/http"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()
	_, app := setupServerTest(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "Sup3rSecret!Pass",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", status, body)
	}
	if body["status"] != "success" {
		t.Fatalf("expected success, got %v", body["status"])
	}
	if body["username"] != "alice" || body["email"] != "alice@example.com" {
		t.Fatalf("unexpected identity fields: %v", body)
	}
	if body["role"] != "user" {
		t.Fatalf("expected default role user, got %v", body["role"])
	}
	if body["token"] == "" || body["token"] == nil {
		t.Fatal("expected a session token")
	}

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"username": "alice",
		"password": "Sup3rSecret!Pass",
	})
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%v)", status, body)
	}
	if body["token"] == "" || body["token"] == nil {
		t.Fatal("login: expected a session token")
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	_, app := setupServerTest(t)

	tests := []struct {
		name string
		body map[string]string
		want int
	}{
		{
			name: "weak password",
			body: map[string]string{"username": "bob", "email": "bob@example.com", "password": "short"},
			want: http.StatusBadRequest,
		},
		{
			name: "bad email",
			body: map[string]string{"username": "bob", "email": "not-an-email", "password": "Sup3rSecret!Pass"},
			want: http.StatusBadRequest,
		},
		{
			name: "bad username",
			body: map[string]string{"username": "-bob-", "email": "bob@example.com", "password": "Sup3rSecret!Pass"},
			want: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := doJSON(t, app, http.MethodPost, "/api/v1/users/register", "", tt.body)
			if status != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, status)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	t.Parallel()
	_, app := setupServerTest(t)

	registerUser(t, app, "carol", "carol@example.com")

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"username": "carol",
		"email":    "other@example.com",
		"password": "Sup3rSecret!Pass",
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate username: expected 409, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"username": "carol2",
		"email":    "carol@example.com",
		"password": "Sup3rSecret!Pass",
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate email: expected 409, got %d", status)
	}
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()
	_, app := setupServerTest(t)

	registerUser(t, app, "dave", "dave@example.com")

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"username": "dave",
		"password": "Wr0ngPassword!!!",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"username": "nobody",
		"password": "Sup3rSecret!Pass",
	})
	if status != http.StatusNotFound {
		t.Fatalf("unknown username: expected 404, got %d", status)
	}
}
