package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"coachhub/coaching-app/internal/domain"
	"coachhub/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Dates in the customer API travel as plain calendar days.
const dateLayout = "2006-01-02"

// CustomerHandler serves the customer-side surface: the daily nutrition view,
// product logging and read access to the customer's own plans.
type CustomerHandler struct {
	nutritionService service.NutritionService
	planService      service.PlanService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(nutritionService service.NutritionService, planService service.PlanService) *CustomerHandler {
	return &CustomerHandler{
		nutritionService: nutritionService,
		planService:      planService,
	}
}

// --- DTOs ---

type LogProductRequest struct {
	Date    string  `json:"date" binding:"required"` // "2006-01-02"
	Slot    string  `json:"slot" binding:"required,oneof=breakfast lunch dinner snacks"`
	Barcode string  `json:"barcode" binding:"required"`
	Amount  float64 `json:"amount" binding:"required,gt=0"` // grams
}

// --- Handler Methods ---

// GetDailyDiet godoc
// @Summary Get the nutrition view for one date
// @Description Returns the coach's targets merged with actual consumption for the date. The shape is the same whether or not a plan covers the date.
// @Tags Customer
// @Produce json
// @Security BearerAuth
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} service.DailyNutrition "Daily nutrition view"
// @Failure 400 {object} gin.H "Invalid date"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /customer/diet [get]
func (h *CustomerHandler) GetDailyDiet(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify customer from token.")
		return
	}

	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		day, err = time.Parse(dateLayout, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD.")
			return
		}
	}

	nutrition, err := h.nutritionService.GetDailyDiet(c.Request.Context(), customerID, day)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve daily diet.")
		return
	}
	c.JSON(http.StatusOK, nutrition)
}

// LogProduct godoc
// @Summary Log a consumed product into a meal slot
// @Description Appends the product to the slot for the date, creating the day record on first write, and returns the refreshed view.
// @Tags Customer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param log body LogProductRequest true "Product log entry"
// @Success 200 {object} service.DailyNutrition "Refreshed daily view"
// @Failure 400 {object} gin.H "Invalid input (date, slot, amount)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "No diet covers the date, or product unknown"
// @Failure 409 {object} gin.H "The day was updated concurrently"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /customer/diet/log [post]
func (h *CustomerHandler) LogProduct(c *gin.Context) {
	var req LogProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify customer from token.")
		return
	}
	day, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD.")
		return
	}

	nutrition, err := h.nutritionService.LogProduct(c.Request.Context(), customerID, day, domain.MealSlot(req.Slot), req.Barcode, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownMealSlot), errors.Is(err, service.ErrInvalidAmount):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNoDietForDate), errors.Is(err, service.ErrProductNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrConcurrentLog):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to log product.")
		}
		return
	}
	c.JSON(http.StatusOK, nutrition)
}

// GetHistory godoc
// @Summary Get recently logged products
// @Description Lists the customer's recently logged products, most recent first.
// @Tags Customer
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries (default 20)"
// @Success 200 {array} domain.CustomerHistoryProduct "Logged product history"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /customer/history [get]
func (h *CustomerHandler) GetHistory(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify customer from token.")
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			abortWithError(c, http.StatusBadRequest, "Invalid limit.")
			return
		}
		limit = parsed
	}

	history, err := h.nutritionService.GetHistory(c.Request.Context(), customerID, limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve history.")
		return
	}
	if history == nil {
		history = []domain.CustomerHistoryProduct{}
	}
	c.JSON(http.StatusOK, history)
}

// GetPlans godoc
// @Summary List the customer's own training plans
// @Tags Customer
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.TrainingPlan "List of plans, newest first"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /customer/plans [get]
func (h *CustomerHandler) GetPlans(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify customer from token.")
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

// GetPlan godoc
// @Summary Get one of the customer's own plans in full
// @Tags Customer
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} domain.TrainingPlan "Plan aggregate"
// @Failure 400 {object} gin.H "Invalid plan ID"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /customer/plans/{planId} [get]
func (h *CustomerHandler) GetPlan(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify customer from token.")
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
	// A plan belonging to someone else is indistinguishable from a missing
	// one.
	if plan.CustomerID != customerID {
		abortWithError(c, http.StatusNotFound, service.ErrPlanNotFound.Error())
		return
	}
	c.JSON(http.StatusOK, plan)
}
