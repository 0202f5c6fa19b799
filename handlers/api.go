package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/egor/ecoprompt/simplify"
)

type questionRequest struct {
	Question string `json:"question" form:"question"`
}

func bindQuestion(c *gin.Context) (string, bool) {
	var req questionRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Printf("Ошибка парсинга вопроса: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	if strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return "", false
	}
	return req.Question, true
}

// AskQuestion очищает вопрос и отправляет его модели.
// Ошибка модели возвращается в теле ответа, статус остаётся 200.
func (h *Handler) AskQuestion(c *gin.Context) {
	raw, ok := bindQuestion(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Assistant.Ask(c.Request.Context(), "api", raw))
}

// SimplifyQuestion только очищает и оценивает вопрос.
func (h *Handler) SimplifyQuestion(c *gin.Context) {
	raw, ok := bindQuestion(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Assistant.Simplify(raw))
}

type ruleView struct {
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

// GetPhrases отдаёт таблицу правил и список лишних фраз.
func (h *Handler) GetPhrases(c *gin.Context) {
	s := simplify.Default()
	rules := make([]ruleView, 0, len(s.Rules()))
	for _, r := range s.Rules() {
		rules = append(rules, ruleView{Pattern: r.Pattern.String(), Replacement: r.Replacement})
	}
	c.JSON(http.StatusOK, gin.H{
		"rules":   rules,
		"fillers": s.Fillers(),
		"scoring": gin.H{
			"max":           simplify.MaxScore,
			"lengthStep":    simplify.LengthStep,
			"fillerPenalty": simplify.FillerPenalty,
		},
	})
}

// Login обрабатывает авторизацию админа
func (h *Handler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.Auth.Authenticate(credentials.Email, credentials.Password)
	if err != nil {
		log.Printf("Ошибка аутентификации для %s: %v", credentials.Email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Успешная авторизация администратора: %s", credentials.Email)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": h.Auth.Admin(),
	})
}
