package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/egor/ecoprompt/config"
	"github.com/egor/ecoprompt/database"
	"github.com/egor/ecoprompt/handlers"
	"github.com/egor/ecoprompt/llm"
	"github.com/egor/ecoprompt/middleware"
	"github.com/egor/ecoprompt/models"
	"github.com/egor/ecoprompt/telegram"
	"github.com/egor/ecoprompt/websocket"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	cfg.SetupLogging()
	gin.SetMode(gin.ReleaseMode)

	// Без ключа сервер всё равно стартует, но отвечает сообщением об ошибке
	cfgErr := cfg.Validate()
	if cfgErr != nil {
		log.Errorf("Приложение не настроено: %v", cfgErr)
	}

	// Журнал вопросов (необязательный)
	var store *database.Store
	if cfg.DatabaseEnabled() {
		store, err = database.Open(cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			log.Fatalf("Ошибка подключения к базе данных: %v", err)
		}
		defer store.Close()
		log.Infof("Журнал вопросов включен (%s)", cfg.DBDriver)
	}

	auth := middleware.NewAuth(cfg.JWTSecret, models.Admin{
		Email:        cfg.AdminEmail,
		PasswordHash: cfg.AdminPasswordHash,
	})

	var wg sync.WaitGroup

	// Инициализация WebSocket хаба (только для админки)
	var hub *websocket.Hub
	if auth.Enabled() {
		hub = websocket.NewHub(cfg.CORSOrigins...)
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Run(ctx)
		}()
	}

	var client llm.Generator
	if cfgErr == nil {
		client, err = llm.NewGenerator(cfg)
		if err != nil {
			log.Fatalf("Ошибка инициализации модели: %v", err)
		}
		log.Infof("Провайдер модели: %s", client.Name())
	}

	var observers []llm.Observer
	if store != nil || hub != nil {
		observers = append(observers, &handlers.QuestionFeed{Store: store, Hub: hub})
	}
	assistant := llm.NewAssistant(nil, client, llm.GetDefaultConfig(), observers...)

	if cfg.TelegramToken != "" && cfgErr == nil {
		bot, err := telegram.New(cfg.TelegramToken, assistant)
		if err != nil {
			log.Errorf("Telegram-бот не запущен: %v", err)
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				bot.Run(ctx)
			}()
		}
	}

	router := handlers.NewRouter(&handlers.Handler{
		Assistant: assistant,
		Store:     store,
		Auth:      auth,
		Hub:       hub,
		ConfigErr: cfgErr,
	}, handlers.Options{CORSOrigins: cfg.CORSOrigins})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Сервер запущен на %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка запуска сервера: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Остановка сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Ошибка остановки сервера: %v", err)
	}
	wg.Wait()
	log.Info("Сервер остановлен")
}
