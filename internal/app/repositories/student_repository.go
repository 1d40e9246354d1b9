package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/masilo/registra/internal/app/models"
	"github.com/masilo/registra/internal/pkg/apperrors"
	"github.com/masilo/registra/internal/pkg/dberrors"
	"github.com/masilo/registra/internal/pkg/logger"
)

var studentColumns = []string{
	"id", "full_name", "id_number", "student_no", "date_of_birth",
	"email", "password", "course", "course_summary", "enrollment_date",
	"registration_timestamp", "status",
}

// StudentRepository handles student record database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.FullName, &s.IDNumber, &s.StudentNo, &s.DateOfBirth,
		&s.Email, &s.Password, &s.Course, &s.CourseSummary, &s.EnrollmentDate,
		&s.RegistrationTimestamp, &s.Status)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// mapStudentConstraintError translates unique violations raised by the
// students table into the matching duplicate sentinel. The schema constraints
// close the race between the pre-insert conflict probe and the write itself.
func mapStudentConstraintError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "students_email_key"):
		return apperrors.ErrDuplicateEmail
	case dberrors.IsDuplicateConstraintError(err, "students_id_number_key"):
		return apperrors.ErrDuplicateIDNumber
	case dberrors.IsDuplicateConstraintError(err, "students_student_no_key"):
		return apperrors.ErrDuplicateStudentNo
	case dberrors.IsUniqueViolation(err):
		// A unique violation from a constraint added after this code shipped.
		logger.Warn().Str("constraint", dberrors.ConstraintName(err)).Msg("Unmapped unique violation on students")
		return apperrors.ErrConflict
	default:
		return nil
	}
}

// Create inserts a new student record and returns its ID
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("full_name", "id_number", "student_no", "date_of_birth",
			"email", "password", "course", "course_summary", "enrollment_date",
			"registration_timestamp", "status").
		Values(student.FullName, student.IDNumber, student.StudentNo, student.DateOfBirth,
			student.Email, student.Password, student.Course, student.CourseSummary, student.EnrollmentDate,
			student.RegistrationTimestamp, student.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if mapped := mapStudentConstraintError(err); mapped != nil {
			logger.Warn().Str("studentNo", student.StudentNo).Msg("Duplicate student insert rejected by constraint")
			return 0, mapped
		}
		logger.Error().Err(err).Str("studentNo", student.StudentNo).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// GetByStudentNo retrieves a student by student number
func (r *StudentRepository) GetByStudentNo(ctx context.Context, studentNo string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"student_no": studentNo}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by studentNo SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentNo", studentNo).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByEmail retrieves a student by email
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by email SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// Search returns listing rows matching the term against full name, student
// number or email. An empty term returns the full listing.
func (r *StudentRepository) Search(ctx context.Context, term string) ([]models.StudentSummary, error) {
	query := r.sb.Select("full_name", "student_no", "id_number", "email",
		"course", "enrollment_date", "status").
		From("students").
		OrderBy("full_name ASC")

	if term != "" {
		pattern := "%" + term + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"full_name": pattern},
			squirrel.ILike{"student_no": pattern},
			squirrel.ILike{"email": pattern},
		})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building search students SQL")
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("term", term).Msg("Error executing search students query")
		return nil, fmt.Errorf("error searching students: %w", err)
	}
	defer rows.Close()

	summaries := []models.StudentSummary{}
	for rows.Next() {
		var s models.StudentSummary
		err := rows.Scan(&s.FullName, &s.StudentNo, &s.IDNumber, &s.Email,
			&s.Course, &s.EnrollmentDate, &s.Status)
		if err != nil {
			return nil, fmt.Errorf("error scanning student summary row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student summary rows: %w", err)
	}

	return summaries, nil
}

// FindConflict returns the first existing student holding any of the given
// unique values, skipping the record identified by excludeStudentNo so an
// update does not collide with itself. Returns ErrStudentNotFound when the
// values are free.
func (r *StudentRepository) FindConflict(ctx context.Context, email, idNumber, studentNo, excludeStudentNo string) (*models.Student, error) {
	query := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Or{
			squirrel.Eq{"email": email},
			squirrel.Eq{"id_number": idNumber},
			squirrel.Eq{"student_no": studentNo},
		}).
		Limit(1)

	if excludeStudentNo != "" {
		query = query.Where(squirrel.NotEq{"student_no": excludeStudentNo})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building find conflict SQL")
		return nil, fmt.Errorf("failed to build find conflict query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning conflict row")
		return nil, fmt.Errorf("error checking student conflicts: %w", err)
	}

	return student, nil
}

// Update rewrites a student record addressed by its student number. The
// student number itself is never changed.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("full_name", student.FullName).
		Set("id_number", student.IDNumber).
		Set("date_of_birth", student.DateOfBirth).
		Set("email", student.Email).
		Set("password", student.Password).
		Set("course", student.Course).
		Set("course_summary", student.CourseSummary).
		Set("enrollment_date", student.EnrollmentDate).
		Set("registration_timestamp", student.RegistrationTimestamp).
		Set("status", student.Status).
		Where(squirrel.Eq{"student_no": student.StudentNo}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if mapped := mapStudentConstraintError(err); mapped != nil {
			logger.Warn().Str("studentNo", student.StudentNo).Msg("Duplicate student update rejected by constraint")
			return mapped
		}
		logger.Error().Err(err).Str("studentNo", student.StudentNo).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student record by student number
func (r *StudentRepository) Delete(ctx context.Context, studentNo string) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"student_no": studentNo}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentNo", studentNo).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	logger.Info().Str("studentNo", studentNo).Msg("Student record deleted")
	return nil
}
