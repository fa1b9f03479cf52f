package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tiffin/internal/models/request_models"
	"tiffin/internal/services"
	"tiffin/pkg/utils"
)

type CustomerController struct {
	customerService services.CustomerServiceInterface
}

func NewCustomerController(customerService services.CustomerServiceInterface) *CustomerController {
	return &CustomerController{
		customerService: customerService,
	}
}

func (ct *CustomerController) CreateCustomer(c *gin.Context) {
	var req request_models.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	customer, err := ct.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, customer, "Customer created successfully")
}

func (ct *CustomerController) ListCustomers(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	customers, err := ct.customerService.ListCustomers(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, customers, "Customers fetched successfully")
}

func (ct *CustomerController) GetCustomerById(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "Customer ID is required")
		return
	}

	customer, err := ct.customerService.GetCustomerById(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, customer, "Customer fetched successfully")
}

func (ct *CustomerController) UpdateCustomer(c *gin.Context) {
	id := c.Param("id")

	var req request_models.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	customer, err := ct.customerService.UpdateCustomer(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, customer, "Customer updated successfully")
}

func (ct *CustomerController) DeleteCustomer(c *gin.Context) {
	id := c.Param("id")

	if err := ct.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Customer deleted successfully")
}

// parsePagination reads the shared page/limit query parameters; it writes
// the error response itself so handlers can bail with a plain return.
func parsePagination(c *gin.Context) (int, int, bool) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("limit", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return 0, 0, false
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return 0, 0, false
	}

	return page, pageSize, true
}
