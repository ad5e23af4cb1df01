package handler

import (
	"net/http"

	"taxcredit/internal/middleware"
	"taxcredit/internal/service"
	"taxcredit/pkg/response"

	"github.com/gin-gonic/gin"
)

type RuleHandler struct {
	ruleService service.RuleService
}

func NewRuleHandler(ruleService service.RuleService) *RuleHandler {
	return &RuleHandler{ruleService: ruleService}
}

func (h *RuleHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/rules", middleware.RequireRole(readRoles...), h.ListRules)
}

// ListRules returns the credit rule catalog
// @Summary      List credit rules
// @Tags         rules
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.RuleResponse}
// @Router       /api/rules [get]
func (h *RuleHandler) ListRules(c *gin.Context) {
	rules, err := h.ruleService.ListRules(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rules))
}
