package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jaeyeonyy/moacc/internal/apperr"
	"github.com/jaeyeonyy/moacc/internal/command"
	"github.com/jaeyeonyy/moacc/internal/models"
)

// ---- mock implementations ----

type mockUserCommander struct {
	signUpFn         func(command.SignUpCommand) (*models.UserView, error)
	changePasswordFn func(userID int64, currentPassword, newPassword string) error
	changeLanguageFn func(userID int64, code string) (*models.UserView, error)
	changeNameFn     func(userID int64, name string) (*models.UserView, error)
}

func (m *mockUserCommander) SignUp(ctx context.Context, cmd command.SignUpCommand) (*models.UserView, error) {
	if m.signUpFn != nil {
		return m.signUpFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockUserCommander) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(userID, currentPassword, newPassword)
	}
	return fmt.Errorf("not configured")
}

func (m *mockUserCommander) ChangeLanguage(ctx context.Context, userID int64, code string) (*models.UserView, error) {
	if m.changeLanguageFn != nil {
		return m.changeLanguageFn(userID, code)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockUserCommander) ChangeName(ctx context.Context, userID int64, name string) (*models.UserView, error) {
	if m.changeNameFn != nil {
		return m.changeNameFn(userID, name)
	}
	return nil, fmt.Errorf("not configured")
}

type mockUserQuerier struct {
	getFn func(userID int64) (*models.UserView, error)
}

func (m *mockUserQuerier) GetUser(ctx context.Context, userID int64) (*models.UserView, error) {
	if m.getFn != nil {
		return m.getFn(userID)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func fakeAuthUser(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	}
}

func newUserTestRouter(cmds UserCommander, qrys UserQuerier, authUserID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUserHandler(cmds, qrys)
	users := r.Group("/api/v1/users")
	users.POST("/sign-up", h.SignUp)
	users.GET("/me", fakeAuthUser(authUserID), h.GetMe)
	users.PATCH("/password", fakeAuthUser(authUserID), h.ChangePassword)
	users.PATCH("/language", fakeAuthUser(authUserID), h.ChangeLanguage)
	users.PATCH("/name", fakeAuthUser(authUserID), h.ChangeName)
	return r
}

func doRequest(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var testUserView = &models.UserView{
	UserID:       1,
	Username:     "a@b.com",
	Name:         "A",
	Language:     "한국어",
	Introduction: "hi",
}

func validSignUpBody() map[string]interface{} {
	return map[string]interface{}{
		"username":     "a@b.com",
		"password":     "p1",
		"name":         "A",
		"language":     "KO",
		"introduction": "hi",
	}
}

// ---- tests ----

func TestSignUpHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		signUpFn       func(command.SignUpCommand) (*models.UserView, error)
		expectedStatus int
	}{
		{
			name:           "success - creates new user",
			body:           validSignUpBody(),
			signUpFn:       func(cmd command.SignUpCommand) (*models.UserView, error) { return testUserView, nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "conflict - duplicate username",
			body:           validSignUpBody(),
			signUpFn:       func(cmd command.SignUpCommand) (*models.UserView, error) { return nil, apperr.UsernameAlreadyExists },
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "bad request - missing required fields",
			body:           map[string]interface{}{"username": "a@b.com"},
			signUpFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - invalid email format",
			body:           map[string]interface{}{"username": "not-an-email", "password": "p1", "name": "A", "language": "KO"},
			signUpFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - unsupported language",
			body:           map[string]interface{}{"username": "a@b.com", "password": "p1", "name": "A", "language": "FR"},
			signUpFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockUserCommander{signUpFn: tt.signUpFn}
			router := newUserTestRouter(cmds, &mockUserQuerier{}, 0)
			w := doRequest(router, http.MethodPost, "/api/v1/users/sign-up", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected status %d, got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestSignUpHandlerResponseBody(t *testing.T) {
	cmds := &mockUserCommander{
		signUpFn: func(cmd command.SignUpCommand) (*models.UserView, error) { return testUserView, nil },
	}
	router := newUserTestRouter(cmds, &mockUserQuerier{}, 0)
	w := doRequest(router, http.MethodPost, "/api/v1/users/sign-up", validSignUpBody())

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool            `json:"success"`
		Data    models.UserView `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Errorf("expected success envelope, got body: %s", w.Body.String())
	}
	if resp.Data.Language != "한국어" {
		t.Errorf("expected language display %q, got %q", "한국어", resp.Data.Language)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Errorf("response must not expose password fields: %s", w.Body.String())
	}
}

func TestChangePasswordHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		changeFn       func(userID int64, currentPassword, newPassword string) error
		expectedStatus int
	}{
		{
			name:           "success - password changed",
			body:           map[string]string{"currentPassword": "p1", "newPassword": "p2"},
			changeFn:       func(userID int64, currentPassword, newPassword string) error { return nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad request - current password wrong",
			body:           map[string]string{"currentPassword": "wrong", "newPassword": "p2"},
			changeFn:       func(userID int64, currentPassword, newPassword string) error { return apperr.PasswordMismatch },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not found - user does not exist",
			body:           map[string]string{"currentPassword": "p1", "newPassword": "p2"},
			changeFn:       func(userID int64, currentPassword, newPassword string) error { return apperr.UserNotFound },
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "bad request - missing new password",
			body:           map[string]string{"currentPassword": "p1"},
			changeFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockUserCommander{changePasswordFn: tt.changeFn}
			router := newUserTestRouter(cmds, &mockUserQuerier{}, 1)
			w := doRequest(router, http.MethodPatch, "/api/v1/users/password", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected status %d, got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestChangeLanguageHandler(t *testing.T) {
	englishView := &models.UserView{UserID: 1, Username: "a@b.com", Name: "A", Language: "영어"}

	tests := []struct {
		name           string
		body           interface{}
		changeFn       func(userID int64, code string) (*models.UserView, error)
		expectedStatus int
	}{
		{
			name:           "success - language changed",
			body:           map[string]string{"newLanguage": "EN"},
			changeFn:       func(userID int64, code string) (*models.UserView, error) { return englishView, nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad request - unsupported code",
			body:           map[string]string{"newLanguage": "XX"},
			changeFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - missing field",
			body:           map[string]string{},
			changeFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not found - user does not exist",
			body:           map[string]string{"newLanguage": "EN"},
			changeFn:       func(userID int64, code string) (*models.UserView, error) { return nil, apperr.UserNotFound },
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockUserCommander{changeLanguageFn: tt.changeFn}
			router := newUserTestRouter(cmds, &mockUserQuerier{}, 1)
			w := doRequest(router, http.MethodPatch, "/api/v1/users/language", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected status %d, got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestChangeNameHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		changeFn       func(userID int64, name string) (*models.UserView, error)
		expectedStatus int
	}{
		{
			name:           "success - name changed",
			body:           map[string]string{"newName": "B"},
			changeFn:       func(userID int64, name string) (*models.UserView, error) { return testUserView, nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad request - missing name",
			body:           map[string]string{},
			changeFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not found - user does not exist",
			body:           map[string]string{"newName": "B"},
			changeFn:       func(userID int64, name string) (*models.UserView, error) { return nil, apperr.UserNotFound },
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockUserCommander{changeNameFn: tt.changeFn}
			router := newUserTestRouter(cmds, &mockUserQuerier{}, 1)
			w := doRequest(router, http.MethodPatch, "/api/v1/users/name", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected status %d, got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestGetMeHandler(t *testing.T) {
	tests := []struct {
		name           string
		getFn          func(userID int64) (*models.UserView, error)
		expectedStatus int
	}{
		{
			name:           "success - own profile",
			getFn:          func(userID int64) (*models.UserView, error) { return testUserView, nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not found - user does not exist",
			getFn:          func(userID int64) (*models.UserView, error) { return nil, apperr.UserNotFound },
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newUserTestRouter(&mockUserCommander{}, &mockUserQuerier{getFn: tt.getFn}, 1)
			w := doRequest(router, http.MethodGet, "/api/v1/users/me", nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected status %d, got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}
