package models

import (
	"time"
)

// Status is the lifecycle state of a student record.
type Status string

const (
	StatusPending          Status = "Pending"
	StatusAwaitingApproval Status = "Awaiting Approval"
	StatusActive           Status = "Active"
	StatusOnHold           Status = "On-hold"
	StatusSuspended        Status = "Suspended"
	StatusGraduated        Status = "Graduated"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAwaitingApproval, StatusActive, StatusOnHold, StatusSuspended, StatusGraduated:
		return true
	}
	return false
}

// Student defines the student model based on the 'students' table. The business
// key is StudentNo; the row id never leaves the database layer's concerns.
type Student struct {
	ID                    int64      `json:"id" db:"id"`
	FullName              string     `json:"fullname" db:"full_name"`
	IDNumber              string     `json:"idNumber" db:"id_number"`
	StudentNo             string     `json:"studentNo" db:"student_no"`
	DateOfBirth           *time.Time `json:"-" db:"date_of_birth"` // nullable, rendered as YYYY-MM-DD in DTOs
	Email                 string     `json:"email" db:"email"`
	Password              string     `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Course                Course     `json:"course" db:"course"`
	CourseSummary         string     `json:"courseSummary" db:"course_summary"`
	EnrollmentDate        *time.Time `json:"-" db:"enrollment_date"` // nullable
	RegistrationTimestamp time.Time  `json:"-" db:"registration_timestamp"`
	Status                Status     `json:"status" db:"status"`
}

// StudentSummary is the listing/search projection of a student row.
type StudentSummary struct {
	FullName       string     `json:"fullname" db:"full_name"`
	StudentNo      string     `json:"studentNo" db:"student_no"`
	IDNumber       string     `json:"idNumber" db:"id_number"`
	Email          string     `json:"email" db:"email"`
	Course         Course     `json:"course" db:"course"`
	EnrollmentDate *time.Time `json:"enrollmentDate" db:"enrollment_date"`
	Status         Status     `json:"status" db:"status"`
}
