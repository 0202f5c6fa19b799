package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/egor/ecoprompt/database"
	"github.com/egor/ecoprompt/llm"
	"github.com/egor/ecoprompt/middleware"
	"github.com/egor/ecoprompt/models"
	"github.com/egor/ecoprompt/websocket"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler собирает зависимости HTTP-обработчиков.
type Handler struct {
	Assistant *llm.Assistant
	Store     *database.Store // nil: журнал отключен
	Auth      *middleware.Auth
	Hub       *websocket.Hub // nil: live-лента отключена

	// при ConfigErr != nil приложение не принимает вопросы
	ConfigErr error
}

// Options — настройки роутера.
type Options struct {
	CORSOrigins []string
}

// NewRouter регистрирует все маршруты.
func NewRouter(h *Handler, opts Options) *gin.Engine {
	if h.Auth == nil {
		h.Auth = middleware.NewAuth("", models.Admin{})
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// Настройка CORS для взаимодействия с фронтендом
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	r.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")))

	r.GET("/healthz", h.Health)
	r.Use(middleware.RequireConfigured(h.ConfigErr, h.configError, "/healthz"))

	r.GET("/", h.IndexPage)
	r.POST("/", h.AskPage)

	api := r.Group("/api")
	{
		api.POST("/questions", h.AskQuestion)
		api.POST("/simplify", h.SimplifyQuestion)
		api.GET("/phrases", h.GetPhrases)

		// Эндпоинт для авторизации админа (публичный)
		api.POST("/auth/login", h.Login)

		admin := api.Group("/admin")
		admin.Use(h.Auth.AuthMiddleware())
		{
			admin.GET("/questions", h.GetQuestions)
			admin.GET("/stats", h.GetStats)
		}
	}

	// WebSocket эндпоинт (токен в ?token=)
	r.GET("/ws", h.Auth.AuthMiddleware(), h.ServeWs)

	return r
}

// Health — проверка живости; отвечает даже без ключа модели.
func (h *Handler) Health(c *gin.Context) {
	status := gin.H{"status": "ok", "configured": h.ConfigErr == nil}
	if h.ConfigErr != nil {
		status["error"] = h.ConfigErr.Error()
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handler) configError(c *gin.Context) {
	if wantsJSON(c) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": llm.MsgMissingAPIKey, "detail": h.ConfigErr.Error()})
		return
	}
	c.HTML(http.StatusServiceUnavailable, "index.html", pageView{ConfigError: llm.MsgMissingAPIKey})
}

func wantsJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/") ||
		strings.Contains(c.GetHeader("Accept"), "application/json")
}
