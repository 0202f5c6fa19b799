package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/egor/ecoprompt/database"
	"github.com/egor/ecoprompt/websocket"
)

// PaginationResponse стандартная структура ответа с пагинацией
type PaginationResponse struct {
	Items      interface{} `json:"items"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalItems int         `json:"totalItems"`
	TotalPages int         `json:"totalPages"`
}

// GetQuestions возвращает страницу журнала вопросов
func (h *Handler) GetQuestions(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "журнал вопросов отключен"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(database.DefaultPageSize)))
	page, pageSize = database.NormalizePage(page, pageSize)

	items, total, err := h.Store.ListQuestions(c.Request.Context(), page, pageSize)
	if err != nil {
		log.Printf("Ошибка получения журнала: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка получения журнала: " + err.Error()})
		return
	}

	// Рассчитываем общее количество страниц
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, PaginationResponse{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// GetStats возвращает сводку по журналу
func (h *Handler) GetStats(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "журнал вопросов отключен"})
		return
	}
	top, _ := strconv.Atoi(c.DefaultQuery("top", "10"))
	st, err := h.Store.Stats(c.Request.Context(), top)
	if err != nil {
		log.Printf("Ошибка получения статистики: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// ServeWs подключает админа к live-ленте вопросов
func (h *Handler) ServeWs(c *gin.Context) {
	if h.Hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "live-лента отключена"})
		return
	}
	websocket.ServeWs(h.Hub, c.Writer, c.Request, c.GetString("adminEmail"))
}
