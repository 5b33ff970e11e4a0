package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"coachhub/coaching-app/internal/domain"
	"coachhub/coaching-app/internal/notification"
	"coachhub/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CoachHandler serves the coach-side surface: customer roster management and
// training plan composition.
type CoachHandler struct {
	customerService service.CustomerService
	planService     service.PlanService
	notifier        notification.Notifier
	logger          *slog.Logger
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(
	customerService service.CustomerService,
	planService service.PlanService,
	notifier notification.Notifier,
	logger *slog.Logger,
) *CoachHandler {
	return &CoachHandler{
		customerService: customerService,
		planService:     planService,
		notifier:        notifier,
		logger:          logger,
	}
}

// --- DTOs for Customer Management ---

type CreateCustomerRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
}

// CreateCustomerResponse carries the one-time password exactly once, at
// creation time. It is never retrievable afterwards.
type CreateCustomerResponse struct {
	User            UserResponse `json:"user"`
	OneTimePassword string       `json:"oneTimePassword"`
}

type CustomerResponse struct {
	UserResponse
	LastPlanEndDate *time.Time `json:"lastPlanEndDate,omitempty"`
}

func mapCustomerToResponse(customer *service.CustomerWithPlan) CustomerResponse {
	return CustomerResponse{
		UserResponse:    MapUserToResponse(&customer.User),
		LastPlanEndDate: customer.LastPlanEndDate,
	}
}

// --- DTOs for Plan Composition ---

type DietRequest struct {
	Proteins int `json:"proteins" binding:"min=0"`
	Fats     int `json:"fats" binding:"min=0"`
	Carbs    int `json:"carbs" binding:"min=0"`
	Calories int `json:"calories" binding:"min=0"` // derived from macros when zero
}

type AssignmentRequest struct {
	ExerciseID string      `json:"exerciseId" binding:"required,uuid"`
	Sets       []int       `json:"sets" binding:"required,min=1"`
	Supersets  []uuid.UUID `json:"supersets"` // exercise IDs linked with this one
}

type TrainingRequest struct {
	Name      string              `json:"name" binding:"required"`
	Exercises []AssignmentRequest `json:"exercises" binding:"required,min=1,dive"`
}

type CreatePlanRequest struct {
	StartDate    time.Time         `json:"startDate" binding:"required"` // ISO8601, e.g. "2026-05-10T00:00:00Z"
	EndDate      time.Time         `json:"endDate" binding:"required"`
	Notes        string            `json:"notes"`
	SetRest      int               `json:"setRest" binding:"min=0"`      // seconds; defaulted when zero
	ExerciseRest int               `json:"exerciseRest" binding:"min=0"` // seconds; defaulted when zero
	Diets        []DietRequest     `json:"diets" binding:"dive"`
	Trainings    []TrainingRequest `json:"trainings" binding:"dive"`
}

func (r *CreatePlanRequest) toInput() (service.PlanInput, error) {
	input := service.PlanInput{
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Notes:        r.Notes,
		SetRest:      r.SetRest,
		ExerciseRest: r.ExerciseRest,
	}
	for _, diet := range r.Diets {
		input.Diets = append(input.Diets, service.DietInput(diet))
	}
	for _, training := range r.Trainings {
		ti := service.TrainingInput{Name: training.Name}
		for _, assignment := range training.Exercises {
			exerciseID, err := uuid.Parse(assignment.ExerciseID)
			if err != nil {
				return service.PlanInput{}, err
			}
			ti.Exercises = append(ti.Exercises, service.ExerciseAssignment{
				ExerciseID: exerciseID,
				Sets:       assignment.Sets,
				Supersets:  assignment.Supersets,
			})
		}
		input.Trainings = append(input.Trainings, ti)
	}
	return input, nil
}

// --- Handler Methods for Customer Management ---

// CreateCustomer godoc
// @Summary Register a new customer under the coach
// @Description Creates a customer account managed by the authenticated coach and returns a one-time password.
// @Tags Coach
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param customer body CreateCustomerRequest true "Customer details"
// @Success 201 {object} CreateCustomerResponse "Customer created"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 409 {object} gin.H "Conflict (phone number or full name already registered)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /coach/customers [post]
func (h *CoachHandler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	coachID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify coach from token.")
		return
	}

	customer, otp, err := h.customerService.CreateCustomer(c.Request.Context(), coachID, service.CustomerInput{
		PhoneNumber: req.PhoneNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
	if err != nil {
		if errors.Is(err, service.ErrCustomerUsernameTaken) || errors.Is(err, service.ErrCustomerNameTaken) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create customer.")
		}
		return
	}

	c.JSON(http.StatusCreated, CreateCustomerResponse{
		User:            MapUserToResponse(customer),
		OneTimePassword: otp,
	})
}

// GetCustomers godoc
// @Summary Get the coach's customers
// @Description Lists customers managed by the authenticated coach with the end date of their latest plan.
// @Tags Coach
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CustomerResponse "List of managed customers"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /coach/customers [get]
func (h *CoachHandler) GetCustomers(c *gin.Context) {
	coachID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify coach from token.")
		return
	}

	customers, err := h.customerService.GetCustomers(c.Request.Context(), coachID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve customers.")
		return
	}

	responses := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, mapCustomerToResponse(&customers[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetCustomer godoc
// @Summary Get one managed customer
// @Tags Coach
// @Produce json
// @Security BearerAuth
// @Param customerId path string true "Customer ID"
// @Success 200 {object} CustomerResponse "Customer details"
// @Failure 400 {object} gin.H "Invalid customer ID"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden (customer not managed by this coach)"
// @Failure 404 {object} gin.H "Customer not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /coach/customers/{customerId} [get]
func (h *CoachHandler) GetCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid customer ID format.")
		return
	}
	coachID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify coach from token.")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), coachID, customerID)
	if err != nil {
		h.abortCustomerError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapCustomerToResponse(customer))
}

// --- Handler Methods for Plan Composition ---

// CreateTrainingPlan godoc
// @Summary Create a training plan for a customer
// @Description Assembles the full plan aggregate (trainings, exercise assignments with superset groups, diets) in one atomic write.
// @Tags Coach
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param customerId path string true "Customer ID"
// @Param plan body CreatePlanRequest true "Plan details"
// @Success 201 {object} domain.TrainingPlan "Training plan created"
// @Failure 400 {object} gin.H "Invalid input (window, macros, IDs)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden (customer not managed, or exercise not visible)"
// @Failure 404 {object} gin.H "Customer not found"
// @Failure 409 {object} gin.H "Conflict (overlapping plan window)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /coach/customers/{customerId}/plans [post]
func (h *CoachHandler) CreateTrainingPlan(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid customer ID format.")
		return
	}
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	coachID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify coach from token.")
		return
	}

	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	plan, err := h.planService.CreateTrainingPlan(c.Request.Context(), coachID, customerID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCustomerNotManaged), errors.Is(err, service.ErrExerciseNotVisible):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrInvalidPlanWindow), errors.Is(err, service.ErrNegativeMacros):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPlanOverlap):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create training plan.")
		}
		return
	}

	// Notify the customer out of band. A delivery failure never fails the
	// request that is already committed.
	if customer, cerr := h.customerService.GetCustomer(c.Request.Context(), coachID, customerID); cerr == nil {
		if nerr := h.notifier.PlanAssigned(c.Request.Context(), &customer.User, plan); nerr != nil {
			h.logger.Warn("plan notification failed", "customer_id", customerID, "error", nerr)
		}
	}

	c.JSON(http.StatusCreated, plan)
}

// GetCustomerPlans godoc
// @Summary List a customer's training plans
// @Description Returns the customer's plans ordered by end date, newest first.
// @Tags Coach
// @Produce json
// @Security BearerAuth
// @Param customerId path string true "Customer ID"
// @Success 200 {array} domain.TrainingPlan "List of plans"
// @Failure 400 {object} gin.H "Invalid customer ID"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden (customer not managed by this coach)"
// @Failure 404 {object} gin.H "Customer not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /coach/customers/{customerId}/plans [get]
func (h *CoachHandler) GetCustomerPlans(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid customer ID format.")
		return
	}
	coachID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify coach from token.")
		return
	}

	// Ownership check before listing.
	if _, err := h.customerService.GetCustomer(c.Request.Context(), coachID, customerID); err != nil {
		h.abortCustomerError(c, err)
		return
	}

	plans, err := h.planService.GetCustomerPlans(c.Request.Context(), customerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plans.")
		return
	}
	if plans == nil {
		plans = []domain.TrainingPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

// GetTrainingPlan godoc
// @Summary Get a full training plan
// @Description Returns one plan aggregate with trainings, ordered exercise assignments and diets.
// @Tags Coach
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} domain.TrainingPlan "Plan aggregate"
// @Failure 400 {object} gin.H "Invalid plan ID"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden (plan's customer not managed by this coach)"
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /coach/plans/{planId} [get]
func (h *CoachHandler) GetTrainingPlan(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}
	coachID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify coach from token.")
		return
	}

	plan, err := h.planService.GetTrainingPlan(c.Request.Context(), planID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plan.")
		}
		return
	}

	// The plan must belong to one of this coach's customers.
	if _, err := h.customerService.GetCustomer(c.Request.Context(), coachID, plan.CustomerID); err != nil {
		h.abortCustomerError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeleteTrainingPlan godoc
// @Summary Delete a training plan
// @Description Removes the plan and, via cascade, its trainings, assignments, diets and logged day-facts.
// @Tags Coach
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 204 "Plan deleted"
// @Failure 400 {object} gin.H "Invalid plan ID"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden (plan's customer not managed by this coach)"
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /coach/plans/{planId} [delete]
func (h *CoachHandler) DeleteTrainingPlan(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}
	coachID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify coach from token.")
		return
	}

	if err := h.planService.DeleteTrainingPlan(c.Request.Context(), coachID, planID); err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCustomerNotManaged):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to delete plan.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// abortCustomerError maps customer lookup errors to HTTP statuses.
func (h *CoachHandler) abortCustomerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCustomerNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrCustomerNotManaged):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve customer.")
	}
}
