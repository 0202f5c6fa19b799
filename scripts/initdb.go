// initdb создаёт схему журнала вопросов и печатает bcrypt-хэш пароля
// администратора для ADMIN_PASSWORD_HASH.
//
//	go run ./scripts [password]
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/egor/ecoprompt/config"
	"github.com/egor/ecoprompt/database"
	"github.com/egor/ecoprompt/middleware"
)

func main() {
	// Загружаем переменные окружения из .env файла
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	driver := cfg.DBDriver
	if driver == "" {
		driver = "sqlite"
		log.Println("DB_DRIVER не задан, используем sqlite")
	}

	// Open сам проверяет соединение и создаёт таблицы
	store, err := database.Open(driver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer store.Close()
	log.Println("Схема журнала вопросов готова")

	if len(os.Args) < 2 {
		return
	}
	hash, err := middleware.HashPassword(os.Args[1])
	if err != nil {
		log.Fatalf("Ошибка хеширования пароля: %v", err)
	}
	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
}
