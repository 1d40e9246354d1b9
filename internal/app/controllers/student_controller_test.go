package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/masilo/registra/internal/app/controllers"
	"github.com/masilo/registra/internal/app/models"
	"github.com/masilo/registra/internal/app/routes"
	"github.com/masilo/registra/internal/app/services"
	"github.com/masilo/registra/internal/middleware"
	"github.com/masilo/registra/internal/pkg/apperrors"
	"github.com/masilo/registra/internal/pkg/auth"
)

type memStudentRepo struct {
	students map[string]*models.Student
	nextID   int64
}

func (m *memStudentRepo) Create(_ context.Context, s *models.Student) (int64, error) {
	m.nextID++
	s.ID = m.nextID
	cp := *s
	m.students[s.StudentNo] = &cp
	return s.ID, nil
}

func (m *memStudentRepo) GetByStudentNo(_ context.Context, studentNo string) (*models.Student, error) {
	s, ok := m.students[studentNo]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStudentRepo) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	for _, s := range m.students {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (m *memStudentRepo) Search(_ context.Context, _ string) ([]models.StudentSummary, error) {
	out := []models.StudentSummary{}
	for _, s := range m.students {
		out = append(out, models.StudentSummary{FullName: s.FullName, StudentNo: s.StudentNo})
	}
	return out, nil
}

func (m *memStudentRepo) FindConflict(_ context.Context, email, idNumber, studentNo, excludeStudentNo string) (*models.Student, error) {
	for _, s := range m.students {
		if excludeStudentNo != "" && s.StudentNo == excludeStudentNo {
			continue
		}
		if s.Email == email || s.IDNumber == idNumber || s.StudentNo == studentNo {
			cp := *s
			return &cp, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (m *memStudentRepo) Update(_ context.Context, s *models.Student) error {
	if _, ok := m.students[s.StudentNo]; !ok {
		return apperrors.ErrStudentNotFound
	}
	cp := *s
	m.students[s.StudentNo] = &cp
	return nil
}

func (m *memStudentRepo) Delete(_ context.Context, studentNo string) error {
	if _, ok := m.students[studentNo]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(m.students, studentNo)
	return nil
}

type memAdminRepo struct {
	admins map[string]*models.Admin
}

func (m *memAdminRepo) Create(_ context.Context, a *models.Admin) (int64, error) {
	if _, ok := m.admins[a.Email]; ok {
		return 0, apperrors.ErrAdminEmailExists
	}
	a.ID = int64(len(m.admins) + 1)
	cp := *a
	m.admins[a.Email] = &cp
	return a.ID, nil
}

func (m *memAdminRepo) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	a, ok := m.admins[email]
	if !ok {
		return nil, apperrors.ErrAdminNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAdminRepo) GetByID(_ context.Context, id int64) (*models.Admin, error) {
	for _, a := range m.admins {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperrors.ErrAdminNotFound
}

func (m *memAdminRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := m.admins[email]
	return ok, nil
}

type memSessionRepo struct {
	sessions map[string]*models.Session
}

func (m *memSessionRepo) Create(_ context.Context, token string, userID int64, role string, expiryDate time.Time) error {
	m.sessions[token] = &models.Session{Token: token, UserID: userID, Role: role, ExpiryDate: expiryDate}
	return nil
}

func (m *memSessionRepo) GetByToken(_ context.Context, token string) (*models.Session, error) {
	s, ok := m.sessions[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	if s.IsRevoked {
		return nil, apperrors.ErrSessionRevoked
	}
	if s.ExpiryDate.Before(time.Now()) {
		return nil, apperrors.ErrSessionExpired
	}
	return s, nil
}

func (m *memSessionRepo) Revoke(_ context.Context, token string) error {
	s, ok := m.sessions[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	s.IsRevoked = true
	return nil
}

func (m *memSessionRepo) RevokeAllForUser(_ context.Context, userID int64, role string) error {
	for _, s := range m.sessions {
		if s.UserID == userID && s.Role == role {
			s.IsRevoked = true
		}
	}
	return nil
}

func (m *memSessionRepo) CleanupExpired(_ context.Context) (int64, error) { return 0, nil }

type testEnv struct {
	router      *gin.Engine
	studentRepo *memStudentRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	adminHash, err := auth.HashPassword("Password1")
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	studentHash, err := auth.HashPassword("Student1")
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	adminRepo := &memAdminRepo{admins: map[string]*models.Admin{
		"admin@example.com": {ID: 1, FullName: "Admin One", Email: "admin@example.com", Password: adminHash},
	}}
	studentRepo := &memStudentRepo{students: map[string]*models.Student{
		"S100": {
			ID: 1, FullName: "Lerato Dlamini", IDNumber: "0203045800083", StudentNo: "S100",
			Email: "lerato@example.com", Password: studentHash,
			Course: models.CourseITSecurity, Status: models.StatusActive,
			RegistrationTimestamp: time.Now(),
		},
	}}
	sessionRepo := &memSessionRepo{sessions: map[string]*models.Session{}}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		SessionExp:     12 * time.Hour,
		TokenIssuer:    "registra.test",
	})

	authService := services.NewAuthService(adminRepo, studentRepo, sessionRepo, jwtService, zerolog.Nop())
	studentService := services.NewStudentService(studentRepo, sessionRepo, zerolog.Nop())
	authMiddleware := middleware.NewAuthMiddleware(jwtService, sessionRepo)

	router := gin.New()
	routes.SetupRouter(router,
		controllers.NewAuthController(authService, zerolog.Nop()),
		controllers.NewStudentController(studentService, zerolog.Nop()),
		authMiddleware,
	)

	return &testEnv{router: router, studentRepo: studentRepo}
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	w := e.do(http.MethodPost, "/api/login", "", gin.H{"email": email, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("login as %s failed with status %d: %s", email, w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatal("login response carries no token")
	}
	return token
}

func TestAdminStudentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@example.com", "Password1")

	// Register
	w := env.do(http.MethodPost, "/api/students", token, gin.H{
		"fullname":  "Thabo Mokoena",
		"idNumber":  "9901015800084",
		"studentNo": "S001",
		"email":     "thabo@example.com",
		"course":    "Networking",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}

	// Fetch, derived fields included
	w = env.do(http.MethodGet, "/api/students/S001", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d: %s", w.Code, w.Body.String())
	}
	var student map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &student)
	if student["dateOfBirth"] != "1999-01-01" {
		t.Errorf("dateOfBirth = %v, want derived 1999-01-01", student["dateOfBirth"])
	}
	if student["courseSummary"] == "" {
		t.Error("courseSummary should be auto-filled")
	}
	if student["status"] != "Pending" {
		t.Errorf("status = %v, want Pending default", student["status"])
	}

	// Update
	w = env.do(http.MethodPut, "/api/students/S001", token, gin.H{
		"fullname":  "Thabo M. Mokoena",
		"idNumber":  "9901015800084",
		"studentNo": "S001",
		"email":     "thabo@example.com",
		"course":    "Networking",
		"status":    "Active",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", w.Code, w.Body.String())
	}
	var updateResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &updateResp)
	if updateResp["message"] != "Successfully updated student details" {
		t.Errorf("update message = %v", updateResp["message"])
	}

	// Delete then 404
	w = env.do(http.MethodDelete, "/api/students/S001", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d: %s", w.Code, w.Body.String())
	}
	var deleteResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &deleteResp)
	if deleteResp["message"] != "Successfully deleted student" {
		t.Errorf("delete message = %v", deleteResp["message"])
	}

	w = env.do(http.MethodGet, "/api/students/S001", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", w.Code)
	}
	var notFound map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &notFound)
	if notFound["success"] != false || notFound["message"] != "Student not found" {
		t.Errorf("404 body = %s", w.Body.String())
	}
}

func TestDuplicateEmailNamesField(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@example.com", "Password1")

	w := env.do(http.MethodPost, "/api/students", token, gin.H{
		"fullname":  "Imposter",
		"idNumber":  "9901015800084",
		"studentNo": "S002",
		"email":     "lerato@example.com", // already held by S100
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["message"] != "Email already exists for another student." {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestMissingFieldsListed(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@example.com", "Password1")

	w := env.do(http.MethodPost, "/api/students", token, gin.H{"fullname": "Only Name"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	msg, _ := resp["message"].(string)
	for _, field := range []string{"idNumber", "studentNo", "email"} {
		if !bytes.Contains([]byte(msg), []byte(field)) {
			t.Errorf("message %q should name missing field %s", msg, field)
		}
	}
}

func TestStudentSelfAccessOnly(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "lerato@example.com", "Student1")

	// Own record is readable.
	if w := env.do(http.MethodGet, "/api/students/S100", token, nil); w.Code != http.StatusOK {
		t.Errorf("self get status = %d: %s", w.Code, w.Body.String())
	}
	if w := env.do(http.MethodGet, "/api/students/S100/report", token, nil); w.Code != http.StatusOK {
		t.Errorf("self report status = %d: %s", w.Code, w.Body.String())
	}

	// Someone else's record is not.
	if w := env.do(http.MethodGet, "/api/students/S999", token, nil); w.Code != http.StatusForbidden {
		t.Errorf("foreign get status = %d, want 403", w.Code)
	}

	// Record management stays admin-only.
	if w := env.do(http.MethodGet, "/api/students", token, nil); w.Code != http.StatusForbidden {
		t.Errorf("listing status = %d, want 403", w.Code)
	}
	if w := env.do(http.MethodDelete, "/api/students/S100", token, nil); w.Code != http.StatusForbidden {
		t.Errorf("delete status = %d, want 403", w.Code)
	}
}

func TestRequestsWithoutTokenRejected(t *testing.T) {
	env := newTestEnv(t)

	if w := env.do(http.MethodGet, "/api/students", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if w := env.do(http.MethodGet, "/api/students", "not.a.jwt", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token status = %d, want 401", w.Code)
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@example.com", "Password1")

	if w := env.do(http.MethodGet, "/api/students", token, nil); w.Code != http.StatusOK {
		t.Fatalf("pre-logout status = %d", w.Code)
	}

	if w := env.do(http.MethodPost, "/api/logout", token, nil); w.Code != http.StatusOK {
		t.Fatalf("logout status = %d: %s", w.Code, w.Body.String())
	}

	if w := env.do(http.MethodGet, "/api/students", token, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("post-logout status = %d, want 401", w.Code)
	}
}

func TestRegisterAdminEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/register_admin", "", gin.H{
		"fullname": "Second Admin",
		"email":    "second@example.com",
		"password": "Password1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["message"] != "Successfully Registered, Please log-in." {
		t.Errorf("message = %v", resp["message"])
	}

	// Duplicate registration is rejected with the legacy message.
	w = env.do(http.MethodPost, "/api/register_admin", "", gin.H{
		"fullname": "Second Admin",
		"email":    "second@example.com",
		"password": "Password1",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate status = %d, want 400", w.Code)
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["message"] != "Email already registered." {
		t.Errorf("duplicate message = %v", resp["message"])
	}
}
