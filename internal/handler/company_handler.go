package handler

import (
	"net/http"

	"taxcredit/internal/middleware"
	"taxcredit/internal/service"
	"taxcredit/pkg/pagination"
	"taxcredit/pkg/response"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyService service.CompanyService
}

func NewCompanyHandler(companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

func (h *CompanyHandler) RegisterRoutes(router *gin.RouterGroup) {
	companies := router.Group("/api/companies")
	{
		companies.POST("", middleware.RequireRole(writeRoles...), h.RegisterCompany)
		companies.GET("", middleware.RequireRole(readRoles...), h.ListCompanies)
		companies.GET("/:id", middleware.RequireRole(readRoles...), h.GetCompany)
	}
}

// RegisterCompany registers a company, or returns the existing one for a known registration number
// @Summary      Register company
// @Description  Idempotent on registration number: 201 when created, 200 when it already existed
// @Tags         companies
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RegisterCompanyRequest  true  "Company payload"
// @Success      201      {object}  response.Response{data=service.CompanyResponse}
// @Success      200      {object}  response.Response{data=service.CompanyResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/companies [post]
func (h *CompanyHandler) RegisterCompany(c *gin.Context) {
	var req service.RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	company, created, err := h.companyService.RegisterCompany(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, response.Success(status, company))
}

// ListCompanies returns paginated companies
// @Summary      List companies
// @Tags         companies
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 20)"
// @Param        search  query     string  false  "Search by name or registration number"
// @Success      200     {object}  response.Response{data=[]service.CompanyResponse}
// @Router       /api/companies [get]
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	p := pagination.Parse(c)

	companies, total, err := h.companyService.ListCompanies(c.Request.Context(), c.Query("search"), p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, companies, p.Page, p.Limit, total))
}

// GetCompany returns one company
// @Summary      Get company
// @Tags         companies
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  response.Response{data=service.CompanyResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.companyService.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, company))
}
