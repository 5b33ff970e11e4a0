package api

import (
	"errors"
	"net/http"

	"coachhub/coaching-app/internal/domain"
	"coachhub/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExerciseHandler serves the exercise library: shared exercises plus the
// coach's private ones.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs ---

type CreateExerciseRequest struct {
	Name          string `json:"name" binding:"required"`
	MuscleGroupID string `json:"muscleGroupId" binding:"required,uuid"`
}

// --- Handler Methods ---

// CreateExercise godoc
// @Summary Create a private exercise
// @Description Adds an exercise visible only to the authenticated coach.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} domain.Exercise "Exercise created"
// @Failure 400 {object} gin.H "Invalid input (validation error, unknown muscle group)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	coachID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify coach from token.")
		return
	}
	muscleGroupID, err := uuid.Parse(req.MuscleGroupID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid muscle group ID format.")
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), coachID, req.Name, muscleGroupID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseValidation) || errors.Is(err, service.ErrMuscleGroupUnknown) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create exercise.")
		}
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

// GetExercises godoc
// @Summary List exercises visible to the coach
// @Description Returns shared exercises together with the coach's own.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Exercise "Visible exercises"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [get]
func (h *ExerciseHandler) GetExercises(c *gin.Context) {
	coachID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify coach from token.")
		return
	}

	exercises, err := h.exerciseService.GetExercisesForCoach(c.Request.Context(), coachID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	c.JSON(http.StatusOK, exercises)
}

// GetMuscleGroups godoc
// @Summary List all muscle groups
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.MuscleGroup "Muscle groups"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises/muscle-groups [get]
func (h *ExerciseHandler) GetMuscleGroups(c *gin.Context) {
	groups, err := h.exerciseService.GetMuscleGroups(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve muscle groups.")
		return
	}
	if groups == nil {
		groups = []domain.MuscleGroup{}
	}
	c.JSON(http.StatusOK, groups)
}
