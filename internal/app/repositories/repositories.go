package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/masilo/registra/internal/app/models"
)

// IAdminRepository defines admin account persistence operations
type IAdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetByID(ctx context.Context, id int64) (*models.Admin, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// IStudentRepository defines student record persistence operations
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	GetByStudentNo(ctx context.Context, studentNo string) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	Search(ctx context.Context, term string) ([]models.StudentSummary, error)
	FindConflict(ctx context.Context, email, idNumber, studentNo, excludeStudentNo string) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, studentNo string) error
}

// ISessionRepository defines session persistence operations
type ISessionRepository interface {
	Create(ctx context.Context, token string, userID int64, role string, expiryDate time.Time) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID int64, role string) error
	CleanupExpired(ctx context.Context) (int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	AdminRepository   *AdminRepository
	StudentRepository *StudentRepository
	SessionRepository *SessionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AdminRepository:   NewAdminRepository(db),
		StudentRepository: NewStudentRepository(db),
		SessionRepository: NewSessionRepository(db),
	}
}
