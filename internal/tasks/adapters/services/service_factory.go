package services

import (
	svc "tasknest/internal/tasks/ports/services"
)

// Поддерживаемые алгоритмы хэширования паролей.
const (
	HashAlgoSHA256 = "sha256"
	HashAlgoBcrypt = "bcrypt"
)

// NewPasswordService создает сервис паролей для указанного алгоритма.
// SHA-256 используется по умолчанию: он совместим с данными, которые
// записывает загрузчик демонстрационных данных.
func NewPasswordService(algo string, bcryptCost int) svc.PasswordService {
	if algo == HashAlgoBcrypt {
		return NewBcrypt(bcryptCost)
	}
	return NewSHA256()
}
