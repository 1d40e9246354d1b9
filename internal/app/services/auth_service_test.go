package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/masilo/registra/internal/app/models"
	"github.com/masilo/registra/internal/app/models/dto"
	"github.com/masilo/registra/internal/pkg/apperrors"
	"github.com/masilo/registra/internal/pkg/auth"
)

type mockAdminRepo struct {
	admins map[string]*models.Admin
	nextID int64
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: map[string]*models.Admin{}}
}

func (m *mockAdminRepo) Create(_ context.Context, admin *models.Admin) (int64, error) {
	if _, ok := m.admins[admin.Email]; ok {
		return 0, apperrors.ErrAdminEmailExists
	}
	m.nextID++
	admin.ID = m.nextID
	cp := *admin
	m.admins[admin.Email] = &cp
	return admin.ID, nil
}

func (m *mockAdminRepo) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	a, ok := m.admins[email]
	if !ok {
		return nil, apperrors.ErrAdminNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockAdminRepo) GetByID(_ context.Context, id int64) (*models.Admin, error) {
	for _, a := range m.admins {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperrors.ErrAdminNotFound
}

func (m *mockAdminRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := m.admins[email]
	return ok, nil
}

type mockSessionRepo struct {
	sessions map[string]*models.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: map[string]*models.Session{}}
}

func (m *mockSessionRepo) Create(_ context.Context, token string, userID int64, role string, expiryDate time.Time) error {
	m.sessions[token] = &models.Session{
		Token:      token,
		UserID:     userID,
		Role:       role,
		ExpiryDate: expiryDate,
		CreatedAt:  time.Now(),
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(_ context.Context, token string) (*models.Session, error) {
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

func (m *mockSessionRepo) Revoke(_ context.Context, token string) error {
	s, ok := m.sessions[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	s.IsRevoked = true
	return nil
}

func (m *mockSessionRepo) RevokeAllForUser(_ context.Context, userID int64, role string) error {
	for _, s := range m.sessions {
		if s.UserID == userID && s.Role == role {
			s.IsRevoked = true
		}
	}
	return nil
}

func (m *mockSessionRepo) CleanupExpired(_ context.Context) (int64, error) {
	return 0, nil
}

func newTestAuthService(t *testing.T) (*AuthService, *mockAdminRepo, *mockStudentRepo, *mockSessionRepo) {
	t.Helper()

	adminRepo := newMockAdminRepo()
	studentRepo := newMockStudentRepo()
	sessionRepo := newMockSessionRepo()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		SessionExp:     12 * time.Hour,
		TokenIssuer:    "registra.test",
	})

	svc := NewAuthService(adminRepo, studentRepo, sessionRepo, jwtService, zerolog.Nop())
	return svc, adminRepo, studentRepo, sessionRepo
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	return hash
}

func seedAdmin(t *testing.T, repo *mockAdminRepo) {
	t.Helper()
	if _, err := repo.Create(context.Background(), &models.Admin{
		FullName: "Admin One",
		Email:    "admin@example.com",
		Password: mustHash(t, "Password1"),
	}); err != nil {
		t.Fatalf("seeding admin: %v", err)
	}
}

func TestLoginAdminResolvesRoleServerSide(t *testing.T) {
	svc, adminRepo, _, sessionRepo := newTestAuthService(t)
	seedAdmin(t, adminRepo)

	// The role flag in the request claims "student"; the credentials match an
	// admin, so the server must answer "admin".
	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "Password1",
		Role:     models.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if resp.Role != models.RoleAdmin {
		t.Errorf("role = %q, want %q", resp.Role, models.RoleAdmin)
	}
	if resp.Token == "" {
		t.Error("expected a signed access token")
	}
	if resp.Message != "Loging in. please wait..." {
		t.Errorf("message = %q, want legacy login text", resp.Message)
	}
	if len(sessionRepo.sessions) != 1 {
		t.Errorf("expected one session record, got %d", len(sessionRepo.sessions))
	}
}

func TestLoginStudentCarriesStudentNo(t *testing.T) {
	svc, _, studentRepo, _ := newTestAuthService(t)
	studentRepo.students["S001"] = &models.Student{
		ID:        1,
		FullName:  "Thabo Mokoena",
		StudentNo: "S001",
		Email:     "thabo@example.com",
		Password:  mustHash(t, "Student1"),
	}

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "thabo@example.com",
		Password: "Student1",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if resp.Role != models.RoleStudent {
		t.Errorf("role = %q, want %q", resp.Role, models.RoleStudent)
	}
	if resp.StudentNo != "S001" {
		t.Errorf("studentNo = %q, want S001", resp.StudentNo)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, adminRepo, _, _ := newTestAuthService(t)
	seedAdmin(t, adminRepo)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "admin@example.com", "nope"},
		{"unknown email", "ghost@example.com", "Password1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &dto.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})
			if !errors.Is(err, apperrors.ErrInvalidCredentials) {
				t.Errorf("Login error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLoginRejectsStudentWithoutPassword(t *testing.T) {
	svc, _, studentRepo, _ := newTestAuthService(t)
	// Records registered by an admin without a password carry an empty hash and
	// cannot be logged into.
	studentRepo.students["S002"] = &models.Student{
		ID:        2,
		StudentNo: "S002",
		Email:     "nopass@example.com",
		Password:  "",
	}

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nopass@example.com",
		Password: "",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("Login error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, adminRepo, _, sessionRepo := newTestAuthService(t)
	seedAdmin(t, adminRepo)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "Password1",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.Token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	for token := range sessionRepo.sessions {
		if err := svc.VerifySession(context.Background(), token); !errors.Is(err, apperrors.ErrSessionRevoked) {
			t.Errorf("VerifySession after logout = %v, want ErrSessionRevoked", err)
		}
	}

	// Logging out twice stays idempotent.
	if err := svc.Logout(context.Background(), resp.Token); err != nil {
		t.Errorf("second Logout returned error: %v", err)
	}
}

func TestRegisterAdmin(t *testing.T) {
	svc, adminRepo, _, _ := newTestAuthService(t)

	req := &dto.RegisterAdminRequest{
		FullName: "New Admin",
		Email:    "new@example.com",
		Password: "Password1",
	}
	if err := svc.RegisterAdmin(context.Background(), req); err != nil {
		t.Fatalf("RegisterAdmin returned error: %v", err)
	}

	stored, err := adminRepo.GetByEmail(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("admin not stored: %v", err)
	}
	if stored.Password == "Password1" {
		t.Error("password stored in plaintext")
	}
	if !auth.CheckPassword(stored.Password, "Password1") {
		t.Error("stored hash does not verify against original password")
	}

	if err := svc.RegisterAdmin(context.Background(), req); !errors.Is(err, apperrors.ErrAdminEmailExists) {
		t.Errorf("duplicate RegisterAdmin = %v, want ErrAdminEmailExists", err)
	}
}
