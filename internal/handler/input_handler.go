package handler

import (
	"net/http"

	"taxcredit/internal/middleware"
	"taxcredit/internal/service"
	"taxcredit/pkg/response"

	"github.com/gin-gonic/gin"
)

type InputHandler struct {
	inputService service.InputService
}

func NewInputHandler(inputService service.InputService) *InputHandler {
	return &InputHandler{inputService: inputService}
}

func (h *InputHandler) RegisterRoutes(router *gin.RouterGroup) {
	years := router.Group("/api/companies/:id/years/:year")
	{
		years.GET("/inputs", middleware.RequireRole(readRoles...), h.GetInputs)
		years.PUT("/employment", middleware.RequireRole(writeRoles...), h.SaveEmployment)
		years.PUT("/investments", middleware.RequireRole(writeRoles...), h.SaveInvestments)
		years.PUT("/rnd", middleware.RequireRole(writeRoles...), h.SaveRnd)
		years.PUT("/other", middleware.RequireRole(writeRoles...), h.SaveOther)
	}
}

// GetInputs returns every stored bundle for a company and tax year
// @Summary      Get year inputs
// @Tags         inputs
// @Security     BearerAuth
// @Produce      json
// @Param        id    path      string  true  "Company ID"
// @Param        year  path      int     true  "Tax year"
// @Success      200   {object}  response.Response{data=service.YearInputsResponse}
// @Failure      404   {object}  response.Response
// @Router       /api/companies/{id}/years/{year}/inputs [get]
func (h *InputHandler) GetInputs(c *gin.Context) {
	year, ok := pathYear(c)
	if !ok {
		return
	}
	res, err := h.inputService.GetInputs(c.Request.Context(), c.Param("id"), year)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// SaveEmployment replaces the employment figures for the year
// @Summary      Save employment data
// @Tags         inputs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Company ID"
// @Param        year     path      int                        true  "Tax year"
// @Param        payload  body      service.EmploymentRequest  true  "Employment payload"
// @Success      200      {object}  response.Response{data=service.YearInputsResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/companies/{id}/years/{year}/employment [put]
func (h *InputHandler) SaveEmployment(c *gin.Context) {
	year, ok := pathYear(c)
	if !ok {
		return
	}
	var req service.EmploymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.inputService.SaveEmployment(c.Request.Context(), middleware.Actor(c), c.Param("id"), year, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// SaveInvestments replaces the facility investment items for the year
// @Summary      Save investment items
// @Tags         inputs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Company ID"
// @Param        year     path      int                         true  "Tax year"
// @Param        payload  body      service.InvestmentsRequest  true  "Investment items"
// @Success      200      {object}  response.Response{data=service.YearInputsResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/companies/{id}/years/{year}/investments [put]
func (h *InputHandler) SaveInvestments(c *gin.Context) {
	year, ok := pathYear(c)
	if !ok {
		return
	}
	var req service.InvestmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.inputService.SaveInvestments(c.Request.Context(), middleware.Actor(c), c.Param("id"), year, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// SaveRnd replaces the R&D expense items for the year
// @Summary      Save R&D items
// @Tags         inputs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Company ID"
// @Param        year     path      int                 true  "Tax year"
// @Param        payload  body      service.RndRequest  true  "R&D items"
// @Success      200      {object}  response.Response{data=service.YearInputsResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/companies/{id}/years/{year}/rnd [put]
func (h *InputHandler) SaveRnd(c *gin.Context) {
	year, ok := pathYear(c)
	if !ok {
		return
	}
	var req service.RndRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.inputService.SaveRnd(c.Request.Context(), middleware.Actor(c), c.Param("id"), year, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// SaveOther replaces the startup, donation, income and vehicle figures for the year
// @Summary      Save other data
// @Tags         inputs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Company ID"
// @Param        year     path      int                   true  "Tax year"
// @Param        payload  body      service.OtherRequest  true  "Other payload"
// @Success      200      {object}  response.Response{data=service.YearInputsResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/companies/{id}/years/{year}/other [put]
func (h *InputHandler) SaveOther(c *gin.Context) {
	year, ok := pathYear(c)
	if !ok {
		return
	}
	var req service.OtherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.inputService.SaveOther(c.Request.Context(), middleware.Actor(c), c.Param("id"), year, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
