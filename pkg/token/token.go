package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer   = "smc-salon"
	audience = "reschedule"
)

var (
	// ErrInvalidToken возвращается для поддельного или поврежденного токена
	ErrInvalidToken = errors.New("token: invalid token")

	// ErrTokenExpired возвращается для токена с истекшим сроком
	ErrTokenExpired = errors.New("token: token expired")
)

// Issuer выпускает и проверяет подписанные ссылки на перенос записи
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer создает издателя токенов с HMAC-подписью
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock подменяет источник времени
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// Issue выпускает токен для переноса бронирования bookingID
func (i *Issuer) Issue(bookingID int64) (string, error) {
	now := i.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   strconv.FormatInt(bookingID, 10),
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Parse проверяет подпись и срок действия, возвращает ID бронирования
func (i *Issuer) Parse(raw string) (int64, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	bookingID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || bookingID <= 0 {
		return 0, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}
	return bookingID, nil
}
