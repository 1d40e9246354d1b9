package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/masilo/registra/internal/app/models/dto"
	"github.com/masilo/registra/internal/app/services"
	"github.com/masilo/registra/internal/middleware"
	"github.com/rs/zerolog"
)

// StudentController handles student record operations
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// Search lists student records
// @Summary Search students
// @Description Lists student summaries matching the term against full name, student number or email. An empty term lists everyone.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search term"
// @Success 200 {array} dto.StudentSummaryResponse "Matching students"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) Search(ctx *gin.Context) {
	summaries, err := c.studentService.Search(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		c.logger.Error().Err(err).Msg("Student search failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStudentSummaryResponses(summaries))
}

// Get retrieves a single student
// @Summary Get a student
// @Description Retrieves a full student record by student number
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param studentNo path string true "Student number"
// @Success 200 {object} dto.StudentResponse "Student record"
// @Failure 403 {object} dto.ErrorResponse "Not your record"
// @Failure 404 {object} dto.SuccessResponse "Student not found"
// @Router /students/{studentNo} [get]
func (c *StudentController) Get(ctx *gin.Context) {
	student, err := c.studentService.Get(ctx.Request.Context(), ctx.Param("studentNo"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStudentResponse(student))
}

// Report builds a profile snapshot
// @Summary Student report
// @Description Returns a point-in-time profile snapshot with its generation timestamp
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param studentNo path string true "Student number"
// @Success 200 {object} dto.StudentReport "Report snapshot"
// @Failure 403 {object} dto.ErrorResponse "Not your record"
// @Failure 404 {object} dto.SuccessResponse "Student not found"
// @Router /students/{studentNo}/report [get]
func (c *StudentController) Report(ctx *gin.Context) {
	report, err := c.studentService.Report(ctx.Request.Context(), ctx.Param("studentNo"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// Create registers a new student
// @Summary Register a student
// @Description Creates a new student record, filling derived fields from the ID number and course
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentRequest true "Student record"
// @Success 201 {object} dto.SuccessResponse "Student registered"
// @Failure 400 {object} dto.SuccessResponse "Missing or duplicate field"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /students [post]
func (c *StudentController) Create(ctx *gin.Context) {
	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid student create payload")
		ctx.JSON(http.StatusBadRequest, dto.SuccessResponse{Success: false, Message: "Invalid request format"})
		return
	}

	if err := c.studentService.Create(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.SuccessResponse{Success: true})
}

// Update replaces a student record
// @Summary Update a student
// @Description Replaces the record addressed by student number; the student number itself cannot change
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentNo path string true "Student number"
// @Param request body dto.StudentRequest true "Student record"
// @Success 200 {object} dto.SuccessResponse "Student updated"
// @Failure 400 {object} dto.SuccessResponse "Missing or duplicate field"
// @Failure 404 {object} dto.SuccessResponse "Student not found"
// @Router /students/{studentNo} [put]
func (c *StudentController) Update(ctx *gin.Context) {
	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid student update payload")
		ctx.JSON(http.StatusBadRequest, dto.SuccessResponse{Success: false, Message: "Invalid request format"})
		return
	}

	if err := c.studentService.Update(ctx.Request.Context(), ctx.Param("studentNo"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Successfully updated student details",
	})
}

// Delete removes a student record
// @Summary Delete a student
// @Description Removes the record addressed by student number
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param studentNo path string true "Student number"
// @Success 200 {object} dto.SuccessResponse "Student deleted"
// @Failure 404 {object} dto.SuccessResponse "Student not found"
// @Router /students/{studentNo} [delete]
func (c *StudentController) Delete(ctx *gin.Context) {
	if err := c.studentService.Delete(ctx.Request.Context(), ctx.Param("studentNo")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Successfully deleted student",
	})
}
