package bridge

import "fmt"

// CodedError ошибка выполнения команды с числовым кодом нативной стороны.
//
// Код определяется нативной реализацией и этим слоем не интерпретируется;
// известные значения перечислены в pkg/media (NativeErrorCode).
type CodedError struct {
	Code    int    // Числовой код ошибки
	Message string // Диагностическое сообщение
}

// Error реализует интерфейс error
func (e *CodedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("bridge: нативная ошибка %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("bridge: нативная ошибка %d", e.Code)
}

// NewCodedError создает ошибку с числовым кодом нативной стороны
func NewCodedError(code int, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}
