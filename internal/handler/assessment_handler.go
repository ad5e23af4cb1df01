package handler

import (
	"net/http"
	"strconv"

	"taxcredit/internal/middleware"
	"taxcredit/internal/service"
	"taxcredit/pkg/pagination"
	"taxcredit/pkg/response"

	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	assessmentService service.AssessmentService
}

func NewAssessmentHandler(assessmentService service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

func (h *AssessmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	companies := router.Group("/api/companies/:id")
	{
		companies.POST("/years/:year/assessments", middleware.RequireRole(writeRoles...), h.RunAssessment)
		companies.GET("/assessments", middleware.RequireRole(readRoles...), h.ListAssessments)
	}

	assessments := router.Group("/api/assessments")
	{
		assessments.POST("/preview", middleware.RequireRole(readRoles...), h.Preview)
		assessments.POST("/batch", middleware.RequireRole(writeRoles...), h.RunBatch)
		assessments.GET("/:id", middleware.RequireRole(readRoles...), h.GetAssessment)
	}
}

// RunAssessment evaluates all credit rules against the stored data for a year
// @Summary      Run assessment
// @Description  Evaluates every catalog rule, stores the session and its results, and broadcasts assessment.completed
// @Tags         assessments
// @Security     BearerAuth
// @Produce      json
// @Param        id    path      string  true  "Company ID"
// @Param        year  path      int     true  "Tax year"
// @Success      201   {object}  response.Response{data=service.AssessmentResponse}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /api/companies/{id}/years/{year}/assessments [post]
func (h *AssessmentHandler) RunAssessment(c *gin.Context) {
	year, ok := pathYear(c)
	if !ok {
		return
	}
	res, err := h.assessmentService.RunAssessment(c.Request.Context(), middleware.Actor(c), c.Param("id"), year)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// ListAssessments returns a company's assessment sessions, newest first
// @Summary      List assessments
// @Tags         assessments
// @Security     BearerAuth
// @Produce      json
// @Param        id        path      string  true   "Company ID"
// @Param        tax_year  query     int     false  "Filter by tax year"
// @Param        page      query     int     false  "Page number (default: 1)"
// @Param        limit     query     int     false  "Items per page (default: 20)"
// @Success      200       {object}  response.Response{data=[]service.AssessmentResponse}
// @Failure      404       {object}  response.Response
// @Router       /api/companies/{id}/assessments [get]
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	p := pagination.Parse(c)

	taxYear := 0
	if v := c.Query("tax_year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid tax_year"))
			return
		}
		taxYear = parsed
	}

	sessions, total, err := h.assessmentService.ListAssessments(c.Request.Context(), c.Param("id"), taxYear, p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, sessions, p.Page, p.Limit, total))
}

// Preview evaluates the catalog against inline data without storing anything
// @Summary      Preview assessment
// @Tags         assessments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.PreviewRequest  true  "Company profile and year data"
// @Success      200      {object}  response.Response{data=service.AssessmentResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/assessments/preview [post]
func (h *AssessmentHandler) Preview(c *gin.Context) {
	var req service.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.assessmentService.Preview(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// RunBatch assesses many company/year pairs
// @Summary      Batch assessment
// @Description  Runs assessments concurrently; a failing target is reported in its item
// @Tags         assessments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.BatchAssessmentRequest  true  "Targets"
// @Success      200      {object}  response.Response{data=service.BatchAssessmentResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/assessments/batch [post]
func (h *AssessmentHandler) RunBatch(c *gin.Context) {
	var req service.BatchAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.assessmentService.RunBatch(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// GetAssessment returns one session with all rule results
// @Summary      Get assessment
// @Tags         assessments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Assessment ID"
// @Success      200  {object}  response.Response{data=service.AssessmentResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/assessments/{id} [get]
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	res, err := h.assessmentService.GetAssessment(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
