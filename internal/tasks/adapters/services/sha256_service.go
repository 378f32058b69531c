// Package services provides implementations of service interfaces.
package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	svc "tasknest/internal/tasks/ports/services"
)

// ServiceSHA256 реализует интерфейс PasswordService через детерминированный
// SHA-256 дайджест. Формат совместим с загрузчиком демонстрационных данных,
// который записывает hex-дайджесты прямо в password_hash.
type ServiceSHA256 struct{}

// NewSHA256 создает новый экземпляр сервиса SHA-256.
func NewSHA256() svc.PasswordService {
	return &ServiceSHA256{}
}

// Hash возвращает hex-представление SHA-256 дайджеста пароля.
func (s *ServiceSHA256) Hash(_ context.Context, password string) (string, error) {
	if password == "" {
		return "", svc.ErrInvalidPassword
	}

	digest := sha256.Sum256([]byte(password))
	return hex.EncodeToString(digest[:]), nil
}

// Verify проверяет соответствие пароля сохраненному дайджесту.
func (s *ServiceSHA256) Verify(ctx context.Context, password, hash string) (bool, error) {
	if password == "" || hash == "" {
		return false, svc.ErrInvalidPassword
	}

	computed, err := s.Hash(ctx, password)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1, nil
}
