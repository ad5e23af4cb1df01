package handler

import (
	"errors"
	"net/http"
	"strconv"

	"taxcredit/internal/middleware"
	"taxcredit/internal/service"
	"taxcredit/pkg/response"

	"github.com/gin-gonic/gin"
)

var (
	readRoles  = []string{middleware.RoleAdmin, middleware.RoleAccountant, middleware.RoleViewer}
	writeRoles = []string{middleware.RoleAdmin, middleware.RoleAccountant}
)

// writeError maps service errors onto the response envelope.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrCompanyNotFound), errors.Is(err, service.ErrAssessmentNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, response.Error(status, err.Error()))
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
}

// pathYear reads the :year path parameter.
func pathYear(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid tax year"))
		return 0, false
	}
	return year, true
}
