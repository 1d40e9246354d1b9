package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/masilo/registra/internal/app/models"
	"github.com/masilo/registra/internal/app/models/dto"
	"github.com/masilo/registra/internal/app/repositories"
	"github.com/masilo/registra/internal/pkg/apperrors"
	"github.com/masilo/registra/internal/pkg/auth"
	"github.com/masilo/registra/internal/pkg/helpers"
	"github.com/masilo/registra/internal/pkg/idnum"
	"github.com/rs/zerolog"
)

// StudentService handles student record operations
type StudentService struct {
	studentRepo repositories.IStudentRepository
	sessionRepo repositories.ISessionRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo repositories.IStudentRepository, sessionRepo repositories.ISessionRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// checkRequiredFields returns a validation error naming every missing required
// field at once, so the client can fix the whole form in one round trip.
func checkRequiredFields(req *dto.StudentRequest, studentNo string) error {
	missing := []string{}
	if strings.TrimSpace(req.FullName) == "" {
		missing = append(missing, "fullname")
	}
	if strings.TrimSpace(req.IDNumber) == "" {
		missing = append(missing, "idNumber")
	}
	if strings.TrimSpace(studentNo) == "" {
		missing = append(missing, "studentNo")
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return apperrors.NewMissingFieldsError(missing)
	}
	return nil
}

// checkConflict probes for another student already holding one of the unique
// values. The single fetched row is classified in a fixed order so the client
// always sees one field named: email first, then ID number, then student number.
func (s *StudentService) checkConflict(ctx context.Context, email, idNumber, studentNo, excludeStudentNo string) error {
	existing, err := s.studentRepo.FindConflict(ctx, email, idNumber, studentNo, excludeStudentNo)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil
		}
		return err
	}

	switch {
	case existing.Email == email:
		return apperrors.ErrDuplicateEmail
	case existing.IDNumber == idNumber:
		return apperrors.ErrDuplicateIDNumber
	default:
		return apperrors.ErrDuplicateStudentNo
	}
}

// buildStudent translates a request into a model, parsing dates, applying
// defaults and filling derived fields. Explicit values always win over
// derived ones.
func (s *StudentService) buildStudent(req *dto.StudentRequest, studentNo string) (*models.Student, error) {
	dob, err := helpers.ParseDatePtr(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewValidationError("dateOfBirth must be formatted YYYY-MM-DD")
	}
	enrollment, err := helpers.ParseDatePtr(req.EnrollmentDate)
	if err != nil {
		return nil, apperrors.NewValidationError("enrollmentDate must be formatted YYYY-MM-DD")
	}

	registeredAt := s.now()
	if req.RegistrationTimestamp != "" {
		registeredAt, err = helpers.ParseTimestamp(req.RegistrationTimestamp)
		if err != nil {
			return nil, apperrors.NewValidationError("registrationTimestamp must be formatted YYYY-MM-DD HH:MM:SS")
		}
	}

	status := models.StatusPending
	if req.Status != "" {
		status = models.Status(req.Status)
		if !status.Valid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status %q", req.Status))
		}
	}

	course := models.Course(req.Course)

	if dob == nil && idnum.WellFormed(req.IDNumber) {
		derived, err := idnum.DeriveDateOfBirth(req.IDNumber, s.now())
		if err == nil {
			dob = &derived
		}
	}

	summary := req.CourseSummary
	if summary == "" {
		summary = course.Summary()
	}

	return &models.Student{
		FullName:              strings.TrimSpace(req.FullName),
		IDNumber:              strings.TrimSpace(req.IDNumber),
		StudentNo:             strings.TrimSpace(studentNo),
		DateOfBirth:           dob,
		Email:                 strings.TrimSpace(req.Email),
		Course:                course,
		CourseSummary:         summary,
		EnrollmentDate:        enrollment,
		RegistrationTimestamp: registeredAt,
		Status:                status,
	}, nil
}

// Create registers a new student record
func (s *StudentService) Create(ctx context.Context, req *dto.StudentRequest) error {
	if err := checkRequiredFields(req, req.StudentNo); err != nil {
		return err
	}

	if err := s.checkConflict(ctx, strings.TrimSpace(req.Email), strings.TrimSpace(req.IDNumber), strings.TrimSpace(req.StudentNo), ""); err != nil {
		return err
	}

	student, err := s.buildStudent(req, req.StudentNo)
	if err != nil {
		return err
	}

	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to hash student password")
			return err
		}
		student.Password = hashed
	}

	id, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", id).Str("studentNo", student.StudentNo).Msg("Student registered")
	return nil
}

// Update replaces the record addressed by studentNo. The student number is the
// immutable business key; a body that tries to change it is rejected.
func (s *StudentService) Update(ctx context.Context, studentNo string, req *dto.StudentRequest) error {
	existing, err := s.studentRepo.GetByStudentNo(ctx, studentNo)
	if err != nil {
		return err
	}

	if req.StudentNo != "" && req.StudentNo != studentNo {
		return apperrors.ErrStudentNoImmutable
	}

	if err := checkRequiredFields(req, studentNo); err != nil {
		return err
	}

	if err := s.checkConflict(ctx, strings.TrimSpace(req.Email), strings.TrimSpace(req.IDNumber), studentNo, studentNo); err != nil {
		return err
	}

	student, err := s.buildStudent(req, studentNo)
	if err != nil {
		return err
	}
	student.ID = existing.ID

	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to hash student password")
			return err
		}
		student.Password = hashed
	} else {
		student.Password = existing.Password
	}

	if req.RegistrationTimestamp == "" {
		student.RegistrationTimestamp = existing.RegistrationTimestamp
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return err
	}

	s.logger.Info().Str("studentNo", studentNo).Msg("Student record updated")
	return nil
}

// Get retrieves a single student by student number
func (s *StudentService) Get(ctx context.Context, studentNo string) (*models.Student, error) {
	return s.studentRepo.GetByStudentNo(ctx, studentNo)
}

// Search returns listing rows matching the term; an empty term lists everyone
func (s *StudentService) Search(ctx context.Context, term string) ([]models.StudentSummary, error) {
	return s.studentRepo.Search(ctx, strings.TrimSpace(term))
}

// Delete removes a student record by student number and revokes any sessions
// the student still holds.
func (s *StudentService) Delete(ctx context.Context, studentNo string) error {
	student, err := s.studentRepo.GetByStudentNo(ctx, studentNo)
	if err != nil {
		return err
	}

	if err := s.studentRepo.Delete(ctx, studentNo); err != nil {
		return err
	}

	if err := s.sessionRepo.RevokeAllForUser(ctx, student.ID, models.RoleStudent); err != nil {
		// The record is already gone; a stale session dies at its expiry anyway.
		s.logger.Warn().Err(err).Str("studentNo", studentNo).Msg("Failed to revoke sessions for deleted student")
	}

	return nil
}

// Report builds a point-in-time profile snapshot for a student
func (s *StudentService) Report(ctx context.Context, studentNo string) (*dto.StudentReport, error) {
	student, err := s.studentRepo.GetByStudentNo(ctx, studentNo)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentReport(student, s.now()), nil
}
