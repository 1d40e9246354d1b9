package models

import "testing"

func TestCourseSummary(t *testing.T) {
	courses := []Course{
		CourseSystemDevelopment,
		CourseITSecurity,
		CourseNetworking,
		CourseAIDataScience,
		CourseFullStackDev,
	}

	for _, c := range courses {
		if !c.Valid() {
			t.Errorf("%q should be a valid course", c)
		}
		if c.Summary() == "" {
			t.Errorf("%q should have a fixed summary", c)
		}
	}

	if Course("Underwater Basket Weaving").Valid() {
		t.Error("unknown course reported as valid")
	}
	if got := Course("Underwater Basket Weaving").Summary(); got != "" {
		t.Errorf("unknown course summary = %q, want empty", got)
	}
	if got := Course("").Summary(); got != "" {
		t.Errorf("blank course summary = %q, want empty", got)
	}
}

func TestStatusValid(t *testing.T) {
	valid := []Status{
		StatusPending, StatusAwaitingApproval, StatusActive,
		StatusOnHold, StatusSuspended, StatusGraduated,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("%q should be a valid status", s)
		}
	}

	for _, s := range []Status{"", "Enrolled", "pending"} {
		if s.Valid() {
			t.Errorf("%q should not be a valid status", s)
		}
	}
}
