package handlers

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/egor/ecoprompt/llm"
)

// pageView — данные для templates/index.html.
type pageView struct {
	Input       string
	Answer      *llm.Answer
	ConfigError string
}

var templateFuncs = template.FuncMap{
	// бар шириной в проценты от балла
	"percent": func(score int) int {
		if score < 0 {
			return 0
		}
		if score > 100 {
			return 100
		}
		return score
	},
}

// IndexPage показывает пустую форму.
func (h *Handler) IndexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageView{})
}

// AskPage обрабатывает отправку формы и рисует отчёт.
func (h *Handler) AskPage(c *gin.Context) {
	raw := c.PostForm("question")
	if strings.TrimSpace(raw) == "" {
		// пустой ввод: просто снова форма
		c.HTML(http.StatusOK, "index.html", pageView{Input: raw})
		return
	}

	ans := h.Assistant.Ask(c.Request.Context(), "web", raw)
	c.HTML(http.StatusOK, "index.html", pageView{Input: raw, Answer: &ans})
}
