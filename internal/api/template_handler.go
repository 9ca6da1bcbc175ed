package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/template"
)

// TemplateHandler 暴露内置模板目录。目录是静态数据，这里只做查找。
type TemplateHandler struct{}

// NewTemplateHandler 返回 TemplateHandler 实例。
func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

// ListTemplates 返回全部模板，顺序固定。
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, template.List())
}

// GetTemplate 按 ID 返回模板；未知 ID 回落到默认模板，永不 404。
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	c.JSON(http.StatusOK, template.Get(c.Param("id")))
}
