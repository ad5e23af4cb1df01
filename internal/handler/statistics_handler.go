package handler

import (
	"net/http"
	"strconv"
	"time"

	"taxcredit/internal/middleware"
	"taxcredit/internal/service"
	"taxcredit/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/statistics", middleware.RequireRole(readRoles...), h.GetStatistics)
}

// @Summary      Get credit statistics
// @Description  Totals, category breakdown and top rules/companies over the latest assessment of each company
// @Tags         statistics
// @Produce      json
// @Param        tax_year  query     int  false  "Tax year (default: previous calendar year)"
// @Success      200       {object}  response.Response{data=model.StatisticsResponse}
// @Failure      400       {object}  response.Response
// @Security     BearerAuth
// @Router       /api/statistics [get]
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	taxYear := time.Now().Year() - 1
	if v := c.Query("tax_year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid tax_year"))
			return
		}
		taxYear = parsed
	}

	stats, err := h.statisticsService.GetStatistics(c.Request.Context(), taxYear)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
