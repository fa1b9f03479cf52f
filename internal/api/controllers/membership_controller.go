package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiffin/internal/models/request_models"
	"tiffin/internal/services"
	"tiffin/pkg/utils"
)

type MembershipController struct {
	membershipService services.MembershipServiceInterface
	punchService      services.MealPunchServiceInterface
	selectionService  services.MealSelectionServiceInterface
}

func NewMembershipController(
	membershipService services.MembershipServiceInterface,
	punchService services.MealPunchServiceInterface,
	selectionService services.MealSelectionServiceInterface,
) *MembershipController {
	return &MembershipController{
		membershipService: membershipService,
		punchService:      punchService,
		selectionService:  selectionService,
	}
}

// CreateMembership godoc
// @Summary Create a meal plan membership
// @Description Create a membership for a customer; requires full payment up front
// @Tags Memberships
// @Accept json
// @Produce json
// @Param request body request_models.CreateMembershipRequest true "Create Membership Request"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user-memberships [post]
func (mc *MembershipController) CreateMembership(c *gin.Context) {
	var req request_models.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	membership, err := mc.membershipService.CreateMembership(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, membership, "Membership created successfully")
}

// ListMemberships godoc
// @Summary List memberships
// @Description Paginated list, filterable by customer and status
// @Tags Memberships
// @Produce json
// @Param userId query string false "Customer ID"
// @Param status query string false "Membership status" Enums(active, hold, cancelled, completed)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user-memberships [get]
func (mc *MembershipController) ListMemberships(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	customerID := c.Query("userId")
	status := c.Query("status")

	memberships, err := mc.membershipService.ListMemberships(c.Request.Context(), customerID, status, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, memberships, "Memberships fetched successfully")
}

func (mc *MembershipController) GetMembershipById(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "Membership ID is required")
		return
	}

	membership, err := mc.membershipService.GetMembershipById(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, membership, "Membership fetched successfully")
}

// UpdateMembership godoc
// @Summary Update a membership
// @Description General mutation: counter deltas, payment fields, note, status; meal items are treated as a consumption
// @Tags Memberships
// @Accept json
// @Produce json
// @Param id path string true "Membership ID"
// @Param request body request_models.UpdateMembershipRequest true "Update Membership Request"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user-memberships/{id} [put]
func (mc *MembershipController) UpdateMembership(c *gin.Context) {
	id := c.Param("id")

	var req request_models.UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	membership, err := mc.membershipService.UpdateMembership(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, membership, "Membership updated successfully")
}

func (mc *MembershipController) SetMembershipStatus(c *gin.Context) {
	id := c.Param("id")

	var req request_models.SetMembershipStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Status must be one of hold, active, cancelled")
		return
	}

	membership, err := mc.membershipService.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, membership, "Membership status updated successfully")
}

// PunchMeals godoc
// @Summary Punch meals for a membership day
// @Description Mark meal types of one day as consumed; address the day by date, by week+day, or leave both out for today
// @Tags Memberships
// @Accept json
// @Produce json
// @Param id path string true "Membership ID"
// @Param request body request_models.PunchRequest true "Punch Request"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user-memberships/{id}/punch [post]
func (mc *MembershipController) PunchMeals(c *gin.Context) {
	id := c.Param("id")

	var req request_models.PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	membership, err := mc.punchService.PunchMeals(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, membership, "Meals punched successfully")
}

func (mc *MembershipController) UpdateMealSelections(c *gin.Context) {
	id := c.Param("id")

	var req request_models.UpdateMealSelectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	membership, err := mc.selectionService.UpdateMealSelections(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, membership, "Meal selections updated successfully")
}

func (mc *MembershipController) DeleteMembership(c *gin.Context) {
	id := c.Param("id")

	if err := mc.membershipService.DeleteMembership(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Membership deleted successfully")
}
