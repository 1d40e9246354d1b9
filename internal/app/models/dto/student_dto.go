package dto

import (
	"time"

	"github.com/masilo/registra/internal/app/models"
	"github.com/masilo/registra/internal/pkg/helpers"
)

// StudentRequest carries a full student record for create and update. Dates
// travel as "YYYY-MM-DD" strings and the registration timestamp as
// "YYYY-MM-DD HH:MM:SS"; blanks mean "not provided" and are either defaulted
// or persisted as NULL. Presence of required fields is checked in the service
// so the response can name every missing field at once.
type StudentRequest struct {
	FullName              string `json:"fullname"`
	IDNumber              string `json:"idNumber"`
	StudentNo             string `json:"studentNo"`
	DateOfBirth           string `json:"dateOfBirth"`
	Email                 string `json:"email"`
	Password              string `json:"password"`
	Course                string `json:"course"`
	CourseSummary         string `json:"courseSummary"`
	EnrollmentDate        string `json:"enrollmentDate"`
	RegistrationTimestamp string `json:"registrationTimestamp"`
	Status                string `json:"status"`
}

// StudentResponse is the wire form of a single student row.
type StudentResponse struct {
	ID                    int64  `json:"id"`
	FullName              string `json:"fullname"`
	IDNumber              string `json:"idNumber"`
	StudentNo             string `json:"studentNo"`
	DateOfBirth           string `json:"dateOfBirth,omitempty"`
	Email                 string `json:"email"`
	Course                string `json:"course"`
	CourseSummary         string `json:"courseSummary"`
	EnrollmentDate        string `json:"enrollmentDate,omitempty"`
	RegistrationTimestamp string `json:"registrationTimestamp"`
	Status                string `json:"status"`
}

// NewStudentResponse maps a student model to its wire form.
func NewStudentResponse(s *models.Student) *StudentResponse {
	return &StudentResponse{
		ID:                    s.ID,
		FullName:              s.FullName,
		IDNumber:              s.IDNumber,
		StudentNo:             s.StudentNo,
		DateOfBirth:           helpers.FormatDatePtr(s.DateOfBirth),
		Email:                 s.Email,
		Course:                string(s.Course),
		CourseSummary:         s.CourseSummary,
		EnrollmentDate:        helpers.FormatDatePtr(s.EnrollmentDate),
		RegistrationTimestamp: helpers.FormatTimestamp(s.RegistrationTimestamp),
		Status:                string(s.Status),
	}
}

// StudentSummaryResponse is the wire form of a listing/search row.
type StudentSummaryResponse struct {
	FullName       string `json:"fullname"`
	StudentNo      string `json:"studentNo"`
	IDNumber       string `json:"idNumber"`
	Email          string `json:"email"`
	Course         string `json:"course"`
	EnrollmentDate string `json:"enrollmentDate,omitempty"`
	Status         string `json:"status"`
}

// NewStudentSummaryResponses maps listing rows to their wire form.
func NewStudentSummaryResponses(summaries []models.StudentSummary) []StudentSummaryResponse {
	out := make([]StudentSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, StudentSummaryResponse{
			FullName:       s.FullName,
			StudentNo:      s.StudentNo,
			IDNumber:       s.IDNumber,
			Email:          s.Email,
			Course:         string(s.Course),
			EnrollmentDate: helpers.FormatDatePtr(s.EnrollmentDate),
			Status:         string(s.Status),
		})
	}
	return out
}

// StudentReport is a point-in-time snapshot of a student record, the server
// side counterpart of the printable profile view.
type StudentReport struct {
	Student     *StudentResponse `json:"student"`
	GeneratedAt string           `json:"generatedAt"`
}

// NewStudentReport builds a report snapshot for a student.
func NewStudentReport(s *models.Student, generatedAt time.Time) *StudentReport {
	return &StudentReport{
		Student:     NewStudentResponse(s),
		GeneratedAt: helpers.FormatTimestamp(generatedAt),
	}
}
