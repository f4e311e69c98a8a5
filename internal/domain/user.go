package domain

import (
	"context"
	"time"
)

// Role роль пользователя
type Role string

const (
	RoleCustomer Role = "customer"
	RoleCompany  Role = "company"
	RoleAdmin    Role = "admin"
)

// User профиль пользователя, сохраненный клиентом после входа
type User struct {
	ID           string
	FirstName    string
	MiddleName   string
	LastName     string
	Email        string
	PhoneNumber  string
	DateOfBirth  string // как пришло от backend'а: YYYY-MM-DD или RFC3339
	Gender       Gender
	Role         Role
	ProfilePhoto string
}

// Session токен и профиль текущего пользователя. Только для чтения
type Session struct {
	Token     string
	User      *User
	ExpiresAt *time.Time
	// Subject идентификатор пользователя из claims токена (sub, id, userId или _id)
	Subject string
	// Verified подпись токена проверена шлюзом
	Verified bool
}

// UserID идентификатор пользователя сессии
func (s *Session) UserID() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.ID
}

// OwnerID идентификатор владельца данных шлюза (сохраненные билеты).
// Есть только у сессии с проверенным токеном, профиль из заголовка клиента владельцем не считается
func (s *Session) OwnerID() string {
	if s == nil || !s.Verified {
		return ""
	}
	return s.Subject
}

// Principal ключ, к которому привязывается страница бронирования: проверенный пользователь, иначе сам токен.
// Пустая строка - гость
func (s *Session) Principal() string {
	switch {
	case s == nil || s.Token == "":
		return ""
	case s.OwnerID() != "":
		return "user:" + s.OwnerID()
	default:
		return "token:" + s.Token
	}
}

// SessionProvider источник сессии. Возвращает false, если пользователь не вошел
type SessionProvider interface {
	GetSession(ctx context.Context) (*Session, bool)
}

// StaticSession провайдер с фиксированной сессией (nil - гость)
type StaticSession struct {
	Session *Session
}

func (p StaticSession) GetSession(context.Context) (*Session, bool) {
	if p.Session == nil || p.Session.Token == "" {
		return nil, false
	}
	return p.Session, true
}
