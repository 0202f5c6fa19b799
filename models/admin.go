package models

// Admin — администратор, видящий журнал вопросов.
// Единственный администратор задаётся в конфигурации.
type Admin struct {
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}
