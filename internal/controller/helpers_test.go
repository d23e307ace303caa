package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentapp_backend/internal/middleware"
	"rentapp_backend/internal/model"
	"rentapp_backend/internal/repository"
	"rentapp_backend/internal/service"
	"rentapp_backend/internal/testutil"
	"rentapp_backend/pkg/email"
	"rentapp_backend/pkg/utils/jwt"
	"rentapp_backend/pkg/utils/storage"
)

const fakeCDN = "https://cdn.test/"

type fakeStore struct {
	mu       sync.Mutex
	objects  map[string][]byte
	deleted  []string
	errOnPut error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errOnPut != nil {
		return "", f.errOnPut
	}
	data, _ := io.ReadAll(body)
	f.objects[key] = data
	return fakeCDN + key, nil
}

func (f *fakeStore) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	delete(f.objects, strings.TrimPrefix(url, fakeCDN))
	return nil
}

func (f *fakeStore) OwnsURL(url string) bool {
	return strings.HasPrefix(url, fakeCDN)
}

var _ storage.ObjectStore = (*fakeStore)(nil)

type sentMail struct {
	to   string
	data email.InquiryNotificationData
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendInquiryNotification(_ context.Context, to string, data email.InquiryNotificationData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, data: data})
	return f.err
}

type testServer struct {
	t      *testing.T
	app    *fiber.App
	db     *gorm.DB
	repos  *repository.Repositories
	auth   *service.AuthService
	store  *fakeStore
	mailer *fakeMailer
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWith(t, func(*Deps) {})
}

func newTestServerWith(t *testing.T, tweak func(*Deps)) *testServer {
	t.Helper()
	db := testutil.NewTestDB(t)
	repos := repository.New(db)
	auth := service.NewAuthService(repos.Users, jwt.NewManager("handler-test-secret-long-enough-for-hs256", time.Hour))
	store := newFakeStore()
	mailer := &fakeMailer{}

	deps := Deps{
		Repos:   repos,
		Auth:    auth,
		Storage: store,
		Mailer:  mailer,
		Logger:  testutil.DiscardLogger(),
	}
	tweak(&deps)

	app := fiber.New(FiberConfig())
	app.Use(middleware.Authenticate(auth))
	RegisterRoutes(app, NewHandler(deps), func(c *fiber.Ctx) error { return c.Next() })

	return &testServer{t: t, app: app, db: db, repos: repos, auth: auth, store: store, mailer: mailer}
}

type response struct {
	status int
	body   []byte
}

func (r response) object(t *testing.T) map[string]interface{} {
	t.Helper()
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(r.body, &doc), string(r.body))
	return doc
}

func (r response) list(t *testing.T) []map[string]interface{} {
	t.Helper()
	var docs []map[string]interface{}
	require.NoError(t, json.Unmarshal(r.body, &docs), string(r.body))
	return docs
}

func (s *testServer) send(req *http.Request, token string) response {
	s.t.Helper()
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return response{status: resp.StatusCode, body: body}
}

func (s *testServer) do(method, path, token string, payload interface{}) response {
	s.t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(s.t, err)
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return s.send(req, token)
}

// register signs up through the API and returns the token and user id.
func (s *testServer) register(username string, role model.Role) (string, uint) {
	s.t.Helper()
	res := s.do(fiber.MethodPost, "/register", "", map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
		"role":     role,
	})
	require.Equal(s.t, fiber.StatusCreated, res.status, string(res.body))
	doc := res.object(s.t)
	user := doc["user"].(map[string]interface{})
	return doc["token"].(string), uint(user["id"].(float64))
}

// admin creates an admin directly, since admins cannot self-register.
func (s *testServer) admin() (string, uint) {
	s.t.Helper()
	hash, err := service.HashPassword("password123")
	require.NoError(s.t, err)
	user := &model.User{Username: "root", Email: "root@example.com", Password: hash, Role: model.RoleAdmin}
	require.NoError(s.t, s.repos.Users.Create(context.Background(), user))
	token, err := s.auth.IssueToken(user)
	require.NoError(s.t, err)
	return token, user.ID
}

func propertyPayload() map[string]interface{} {
	return map[string]interface{}{
		"title":         "Sunny Loft",
		"description":   "Top floor",
		"price":         1450.00,
		"address":       "12 Elm St",
		"city":          "Springfield",
		"state":         "IL",
		"zip_code":      "62701",
		"property_type": "apartment",
		"bedrooms":      2,
		"bathrooms":     1,
	}
}

func (s *testServer) createProperty(token string) uint {
	s.t.Helper()
	res := s.do(fiber.MethodPost, "/properties", token, propertyPayload())
	require.Equal(s.t, fiber.StatusCreated, res.status, string(res.body))
	return uint(res.object(s.t)["id"].(float64))
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
