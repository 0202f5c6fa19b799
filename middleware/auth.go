package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/egor/ecoprompt/models"
)

const tokenTTL = 24 * time.Hour

// ErrInvalidCredentials — неверный email или пароль.
var ErrInvalidCredentials = errors.New("неверные учетные данные")

// JWTClaims определяет структуру данных токена
type JWTClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Auth выдаёт и проверяет токены единственного администратора.
type Auth struct {
	key   []byte
	admin models.Admin
}

// NewAuth создаёт авторизацию. С пустым secret вход запрещён.
func NewAuth(secret string, admin models.Admin) *Auth {
	if admin.Role == "" {
		admin.Role = "admin"
	}
	return &Auth{key: []byte(secret), admin: admin}
}

// Enabled — заданы секрет и учётные данные администратора.
func (a *Auth) Enabled() bool {
	return len(a.key) > 0 && a.admin.Email != "" && a.admin.PasswordHash != ""
}

// AuthMiddleware проверяет JWT токен и авторизует запрос.
// Токен берётся из заголовка Authorization или из ?token= (для WebSocket).
func (a *Auth) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
			return
		}

		claims, err := a.ValidateToken(tokenString)
		if err != nil {
			log.WithField("ip", c.ClientIP()).Debugf("Отклонён токен: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "неверный или устаревший токен"})
			return
		}

		c.Set("adminEmail", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// GenerateToken генерирует JWT токен
func (a *Auth) GenerateToken(email, role string) (string, error) {
	if len(a.key) == 0 {
		return "", errors.New("JWT secret is not configured")
	}
	now := time.Now()
	claims := &JWTClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "ecoprompt",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
}

// ValidateToken проверяет и парсит JWT токен
func (a *Auth) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return a.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("недействительный токен")
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return nil, errors.New("неверный формат токена")
	}
	return claims, nil
}

// Authenticate проверяет email и пароль и возвращает токен.
func (a *Auth) Authenticate(email, password string) (string, error) {
	if !a.Enabled() {
		return "", ErrInvalidCredentials
	}
	if !strings.EqualFold(strings.TrimSpace(email), a.admin.Email) {
		return "", ErrInvalidCredentials
	}
	if err := VerifyPassword(password, a.admin.PasswordHash); err != nil {
		return "", ErrInvalidCredentials
	}
	return a.GenerateToken(a.admin.Email, a.admin.Role)
}

// Admin возвращает администратора без хэша пароля.
func (a *Auth) Admin() models.Admin {
	admin := a.admin
	admin.PasswordHash = ""
	return admin
}

func VerifyPassword(pw, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}

// HashPassword — bcrypt-хэш для ADMIN_PASSWORD_HASH.
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
