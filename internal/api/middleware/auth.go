package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
)

var (
	// ErrTokenExpired срок действия токена истек
	ErrTokenExpired = errors.New("middleware: token expired")

	// ErrInvalidToken токен не прошел проверку подписи
	ErrInvalidToken = errors.New("middleware: invalid token")

	// ErrInvalidUser заголовок с профилем не удалось прочитать
	ErrInvalidUser = errors.New("middleware: invalid user header")
)

type sessionKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// AuthOptions параметры чтения сессии клиента
type AuthOptions struct {
	// JWTSecret если задан, проверяется HMAC подпись токена. Иначе только срок действия
	JWTSecret  string
	UserHeader string
	Now        func() time.Time
}

// sessionClaims claims токена сессии. Идентификатор пользователя backend кладет в sub или в id
type sessionClaims struct {
	IDClaim       string `json:"id"`
	UserIDClaim   string `json:"userId"`
	LegacyIDClaim string `json:"_id"`
	jwt.RegisteredClaims
}

func (c *sessionClaims) userID() string {
	for _, id := range []string{c.Subject, c.IDClaim, c.UserIDClaim, c.LegacyIDClaim} {
		if id != "" {
			return id
		}
	}
	return ""
}

// tokenInfo результат проверки токена
type tokenInfo struct {
	expiresAt *time.Time
	subject   string
	verified  bool
}

// userHeader профиль пользователя, как клиент хранит его после входа
type userHeader struct {
	ID           string `json:"id"`
	LegacyID     string `json:"_id"`
	FirstName    string `json:"firstName"`
	MiddleName   string `json:"middleName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	Phone        string `json:"phone"`
	DateOfBirth  string `json:"dateOfBirth"`
	Gender       string `json:"gender"`
	Role         string `json:"role"`
	ProfilePhoto string `json:"profilePhoto"`
}

// Auth читает сессию из заголовков Authorization: Bearer <token> и профиль пользователя (base64 JSON).
// Сессия необязательна: без токена или с просроченным токеном запрос идет как гостевой,
// а операции, которым нужен вход, отвечают 401
func Auth(opts AuthOptions, logger Logger) func(http.Handler) http.Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.UserHeader == "" {
		opts.UserHeader = "X-Kelale-User"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			info, err := checkToken(token, opts.JWTSecret, opts.Now)
			if err != nil {
				logger.Warn("Auth: %s %s - session ignored: %v", r.Method, r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			}

			session := &domain.Session{
				Token:     token,
				ExpiresAt: info.expiresAt,
				Subject:   info.subject,
				Verified:  info.verified,
			}
			if raw := r.Header.Get(opts.UserHeader); raw != "" {
				user, err := decodeUser(raw)
				if err != nil {
					logger.Warn("Auth: %s %s - user profile ignored: %v", r.Method, r.URL.Path, err)
				} else {
					session.User = bindUser(user, info)
					if user.ID != "" && user.ID != session.User.ID {
						logger.Warn("Auth: %s %s - user header id=%q does not match token subject=%q, token wins",
							r.Method, r.URL.Path, user.ID, info.subject)
					}
				}
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// WithSession кладет сессию в контекст
func WithSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// GetSession извлекает сессию из контекста
func GetSession(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*domain.Session)
	if !ok || s == nil || s.Token == "" {
		return nil, false
	}
	return s, true
}

// ContextSessionProvider источник сессии для usecase'ов и страниц бронирования: сессия текущего запроса
type ContextSessionProvider struct{}

func (ContextSessionProvider) GetSession(ctx context.Context) (*domain.Session, bool) {
	return GetSession(ctx)
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// checkToken проверяет токен. Без секрета подпись не проверяется: непрозрачный (не JWT) токен
// пропускается как есть, его проверит backend, но такая сессия не получает проверенного владельца
func checkToken(token, secret string, now func() time.Time) (tokenInfo, error) {
	claims := &sessionClaims{}

	if secret == "" {
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return tokenInfo{}, nil
		}
		if claims.ExpiresAt != nil && !claims.ExpiresAt.After(now()) {
			return tokenInfo{}, ErrTokenExpired
		}
		return tokenInfo{expiresAt: expiry(claims), subject: claims.userID()}, nil
	}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return tokenInfo{}, ErrTokenExpired
		}
		return tokenInfo{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return tokenInfo{expiresAt: expiry(claims), subject: claims.userID(), verified: true}, nil
}

// bindUser сверяет профиль из заголовка с токеном: у проверенного токена идентификатор берется из claims,
// у непроверенного идентификатор из заголовка годится только для отображения
func bindUser(user *domain.User, info tokenInfo) *domain.User {
	if !info.verified {
		return user
	}
	bound := *user
	bound.ID = info.subject
	return &bound
}

func expiry(claims *sessionClaims) *time.Time {
	if claims.ExpiresAt == nil {
		return nil
	}
	t := claims.ExpiresAt.Time
	return &t
}

func decodeUser(raw string) (*domain.User, error) {
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidUser, err)
		}
	}

	var u userHeader
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}

	id := u.ID
	if id == "" {
		id = u.LegacyID
	}
	phone := u.PhoneNumber
	if phone == "" {
		phone = u.Phone
	}

	return &domain.User{
		ID:           id,
		FirstName:    u.FirstName,
		MiddleName:   u.MiddleName,
		LastName:     u.LastName,
		Email:        u.Email,
		PhoneNumber:  phone,
		DateOfBirth:  u.DateOfBirth,
		Gender:       domain.Gender(strings.ToLower(u.Gender)),
		Role:         domain.Role(u.Role),
		ProfilePhoto: u.ProfilePhoto,
	}, nil
}
