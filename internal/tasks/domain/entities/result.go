package entities

// OperationResult - структурированный результат изменяющей операции.
// Ожидаемые бизнес-исходы (не найдено, дубликат, пустой заголовок)
// возвращаются значением, а не ошибкой.
type OperationResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Success создает успешный результат операции.
func Success(message string) OperationResult {
	return OperationResult{OK: true, Message: message}
}

// Failure создает неуспешный результат операции.
func Failure(message string) OperationResult {
	return OperationResult{OK: false, Message: message}
}
