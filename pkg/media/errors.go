package media

import (
	"errors"
	"fmt"

	"github.com/minvt/Ext-Gap-Media/pkg/bridge"
)

// MediaErrorCode определяет типизированные коды ошибок прокси слоя.
// Позволяет классифицировать ошибки по категориям и обрабатывать их
// соответствующим образом.
type MediaErrorCode int

const (
	// Ошибки аргументов (синхронные, до отправки команды через мост)
	ErrorCodeInvalidConfig MediaErrorCode = iota + 1000
	ErrorCodeSrcEmpty
	ErrorCodeCallbackMissing

	// Ошибки реестра
	ErrorCodeHandleNotFound
	ErrorCodeHandleDuplicate

	// Ошибки моста
	ErrorCodeBridgeMissing
)

// String возвращает строковое представление кода ошибки
func (code MediaErrorCode) String() string {
	switch code {
	case ErrorCodeInvalidConfig:
		return "InvalidConfig"
	case ErrorCodeSrcEmpty:
		return "SrcEmpty"
	case ErrorCodeCallbackMissing:
		return "CallbackMissing"
	case ErrorCodeHandleNotFound:
		return "HandleNotFound"
	case ErrorCodeHandleDuplicate:
		return "HandleDuplicate"
	case ErrorCodeBridgeMissing:
		return "BridgeMissing"
	default:
		return fmt.Sprintf("Unknown(%d)", int(code))
	}
}

// MediaError базовая структура ошибок прокси слоя.
// Предоставляет расширенную информацию об ошибке включая:
//   - Типизированный код ошибки
//   - Контекстную информацию
//   - Возможность обертывания других ошибок
//   - Идентификатор handle для сопоставления с логами
type MediaError struct {
	Code     MediaErrorCode
	Message  string
	HandleID string
	Context  map[string]interface{}
	Wrapped  error
}

// Error реализует интерфейс error, возвращая форматированное сообщение
func (e *MediaError) Error() string {
	if e.HandleID != "" {
		return fmt.Sprintf("[медиа:%d] handle %s: %s", e.Code, e.HandleID, e.Message)
	}
	return fmt.Sprintf("[медиа:%d] %s", e.Code, e.Message)
}

// Unwrap возвращает обернутую ошибку, поддерживая errors.Unwrap
func (e *MediaError) Unwrap() error {
	return e.Wrapped
}

// Is поддерживает errors.Is, позволяя сравнивать ошибки по коду
func (e *MediaError) Is(target error) bool {
	if t, ok := target.(*MediaError); ok {
		return e.Code == t.Code
	}
	return false
}

// GetContext возвращает значение из контекста ошибки по ключу
func (e *MediaError) GetContext(key string) interface{} {
	if e.Context == nil {
		return nil
	}
	return e.Context[key]
}

// NewMediaError создает новую ошибку прокси слоя
func NewMediaError(code MediaErrorCode, handleID, message string) *MediaError {
	return &MediaError{
		Code:     code,
		Message:  message,
		HandleID: handleID,
	}
}

// WrapMediaError оборачивает существующую ошибку в MediaError
func WrapMediaError(code MediaErrorCode, handleID, message string, err error) *MediaError {
	return &MediaError{
		Code:     code,
		Message:  message,
		HandleID: handleID,
		Wrapped:  err,
	}
}

// HasErrorCode проверяет, содержит ли цепочка ошибок указанный код
func HasErrorCode(err error, code MediaErrorCode) bool {
	var mediaErr *MediaError
	if errors.As(err, &mediaErr) {
		return mediaErr.Code == code
	}
	return false
}

// NativeCodeOf извлекает числовой код нативной ошибки из цепочки ошибок.
// Возвращает NativeErrNone, если код не передавался.
func NativeCodeOf(err error) NativeErrorCode {
	var coded *bridge.CodedError
	if errors.As(err, &coded) {
		return NativeErrorCode(coded.Code)
	}
	return NativeErrNone
}
