package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"golang.org/x/crypto/bcrypt"

	"newsroom/internal/model"
)

type fakeUserStore struct {
	users     []*model.User
	insertErr error
	updateErr error
	err       error
}

func (f *fakeUserStore) FindByUsername(username string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByEmail(email string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Insert(user *model.User) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	user.ID = int64(len(f.users) + 1)
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserStore) Update(user *model.User) error {
	return f.updateErr
}

func (f *fakeUserStore) CountUsers() (int, error) {
	return len(f.users), f.err
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(hash)
}

func newAuthRouter(users UserStore, sessions SessionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(users, sessions)
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/health", h.Health)
	protected := r.Group("/", RequireAuth(sessions))
	protected.POST("/logout", h.Logout)
	protected.POST("/update-profile", h.UpdateProfile)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestRegister_Success(t *testing.T) {
	users := &fakeUserStore{}
	sessions := newFakeSessionStore()
	r := newAuthRouter(users, sessions)

	w := postForm(r, "/register", url.Values{
		"username":         {"alice"},
		"email":            {"a@x.com"},
		"password":         {"pw123"},
		"confirm_password": {"pw123"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/main-page", w.Header().Get("Location"))
	assert.Equal(t, 1, len(users.users))
	assert.Equal(t, "alice", users.users[0].Username)
	assert.Equal(t, 1, sessions.created)

	// Password is stored hashed, never as submitted.
	assert.NotEqual(t, "pw123", users.users[0].PasswordHash)
	err := bcrypt.CompareHashAndPassword([]byte(users.users[0].PasswordHash), []byte("pw123"))
	assert.Equal(t, nil, err)

	cookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, sessionCookie+"=") {
		t.Errorf("session cookie not set: %q", cookie)
	}
}

func TestRegister_ValidationErrors(t *testing.T) {
	users := &fakeUserStore{}
	sessions := newFakeSessionStore()
	r := newAuthRouter(users, sessions)

	w := postForm(r, "/register", url.Values{
		"username":         {"a"},
		"email":            {"not-an-email"},
		"password":         {"pw123"},
		"confirm_password": {"different"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var res struct {
		Errors map[string]string `json:"errors"`
	}
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.NotEqual(t, "", res.Errors["username"])
	assert.NotEqual(t, "", res.Errors["email"])
	assert.NotEqual(t, "", res.Errors["confirm_password"])
	assert.Equal(t, 0, len(users.users))
	assert.Equal(t, 0, sessions.created)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := &fakeUserStore{users: []*model.User{
		{ID: 1, Username: "bob", Email: "a@x.com"},
	}}
	sessions := newFakeSessionStore()
	r := newAuthRouter(users, sessions)

	w := postForm(r, "/register", url.Values{
		"username":         {"alice"},
		"email":            {"a@x.com"},
		"password":         {"pw123"},
		"confirm_password": {"pw123"},
	})

	assert.Equal(t, http.StatusConflict, w.Code)

	var res struct {
		Errors map[string]string `json:"errors"`
	}
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "This email is already registered.", res.Errors["email"])
	assert.Equal(t, 1, len(users.users))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := &fakeUserStore{users: []*model.User{
		{ID: 1, Username: "alice", Email: "other@x.com"},
	}}
	sessions := newFakeSessionStore()
	r := newAuthRouter(users, sessions)

	w := postForm(r, "/register", url.Values{
		"username":         {"alice"},
		"email":            {"a@x.com"},
		"password":         {"pw123"},
		"confirm_password": {"pw123"},
	})

	assert.Equal(t, http.StatusConflict, w.Code)

	var res struct {
		Errors map[string]string `json:"errors"`
	}
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "That username is already taken.", res.Errors["username"])
}

func TestLogin_Success(t *testing.T) {
	users := &fakeUserStore{users: []*model.User{
		{ID: 1, Username: "alice", Email: "a@x.com", PasswordHash: hashOf(t, "pw123")},
	}}
	sessions := newFakeSessionStore()
	r := newAuthRouter(users, sessions)

	w := postForm(r, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"pw123"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/main-page", w.Header().Get("Location"))
	assert.Equal(t, 1, sessions.created)
	assert.Equal(t, "alice", sessions.sessions["sess-1"].Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := &fakeUserStore{users: []*model.User{
		{ID: 1, Username: "alice", Email: "a@x.com", PasswordHash: hashOf(t, "pw123")},
	}}
	sessions := newFakeSessionStore()
	r := newAuthRouter(users, sessions)

	w := postForm(r, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Incorrect password.", res["error"])
	// No session is created or touched on a failed login.
	assert.Equal(t, 0, sessions.created)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := &fakeUserStore{}
	sessions := newFakeSessionStore()
	r := newAuthRouter(users, sessions)

	w := postForm(r, "/login", url.Values{
		"email":    {"nobody@x.com"},
		"password": {"pw123"},
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "No account found with that email.", res["error"])
}

func TestLogout(t *testing.T) {
	users := &fakeUserStore{}
	sessions := newFakeSessionStore()
	id := sessions.seed("alice")
	r := newAuthRouter(users, sessions)

	w := httptest.NewRecorder()
	req := withSession(httptest.NewRequest("POST", "/logout", nil), id)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, 0, len(sessions.sessions))
}

func TestUpdateProfile_WrongCurrentPassword(t *testing.T) {
	users := &fakeUserStore{users: []*model.User{
		{ID: 1, Username: "alice", Email: "a@x.com", PasswordHash: hashOf(t, "pw123")},
	}}
	sessions := newFakeSessionStore()
	id := sessions.seed("alice")
	r := newAuthRouter(users, sessions)

	w := httptest.NewRecorder()
	form := url.Values{
		"email":            {"new@x.com"},
		"current_password": {"wrong"},
	}
	req := withSession(httptest.NewRequest("POST", "/update-profile", strings.NewReader(form.Encode())), id)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "a@x.com", users.users[0].Email)
}

func TestUpdateProfile_ChangesEmail(t *testing.T) {
	users := &fakeUserStore{users: []*model.User{
		{ID: 1, Username: "alice", Email: "a@x.com", PasswordHash: hashOf(t, "pw123")},
	}}
	sessions := newFakeSessionStore()
	id := sessions.seed("alice")
	r := newAuthRouter(users, sessions)

	w := httptest.NewRecorder()
	form := url.Values{
		"email":            {"new@x.com"},
		"current_password": {"pw123"},
	}
	req := withSession(httptest.NewRequest("POST", "/update-profile", strings.NewReader(form.Encode())), id)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "new@x.com", users.users[0].Email)

	var res struct {
		User UserResponse `json:"user"`
	}
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "new@x.com", res.User.Email)
}

func TestHealth(t *testing.T) {
	users := &fakeUserStore{}
	sessions := newFakeSessionStore()
	r := newAuthRouter(users, sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "healthy", res["status"])
}
