package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	svc "taskflow/internal/taskflow/ports/services"
	"taskflow/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodGenerateToken = "GenerateToken"
	methodValidateToken = "ValidateToken"

	msgGeneratingToken = "generating access token"
	msgValidatingToken = "validating token"
	msgTokenGenerated  = "token generated successfully"
	msgTokenValidated  = "token validated successfully"
	msgInvalidToken    = "invalid token format"
	msgTokenExpired    = "token has expired"

	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken       = "error parsing token"
	errCtxGeneratingToken = "generating token"
	errCtxParsingToken    = "parsing token"
	errCtxValidatingToken = "validating token"
)

// Статические ошибки сервиса токенов.
var (
	ErrInvalidAlgorithm = errors.New("invalid signing algorithm")
	ErrEmptySecretKey   = errors.New("empty secret key")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token expired")
)

// Claims адаптирует доменную модель утверждений к библиотеке JWT.
// Субъектом является email пользователя.
type Claims struct {
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService.
type ServiceJWT struct {
	secretKey []byte
	tokenTTL  time.Duration
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string, tokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
	}
}

// GenerateToken генерирует подписанный токен доступа с email в качестве субъекта.
func (s *ServiceJWT) GenerateToken(ctx context.Context, email string) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateToken),
		zap.String("email", email),
	)
	log.Debug(ctx, msgGeneratingToken)

	if len(s.secretKey) == 0 {
		log.Error(ctx, "empty secret key provided")
		return "", time.Time{}, fmt.Errorf("%s: %w", errCtxGeneratingToken, ErrEmptySecretKey)
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// ValidateToken проверяет токен и возвращает email субъекта.
func (s *ServiceJWT) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateToken))
	log.Debug(ctx, msgValidatingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return "", fmt.Errorf("%s: %w", errCtxValidatingToken, ErrExpiredToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w: %w", errCtxParsingToken, ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return "", fmt.Errorf("%s: %w", errCtxValidatingToken, ErrInvalidToken)
	}

	if claims.Subject == "" {
		log.Debug(ctx, "subject claim is empty")
		return "", fmt.Errorf("%s: %w: empty subject", errCtxValidatingToken, ErrInvalidToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("email", claims.Subject))
	return claims.Subject, nil
}
