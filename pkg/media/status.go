package media

import "fmt"

// StatusMessage тег асинхронного сообщения нативной стороны.
// Числовые значения являются частью wire протокола и не подлежат изменению.
type StatusMessage int

const (
	StatusState    StatusMessage = 1 // Смена состояния воспроизведения
	StatusDuration StatusMessage = 2 // Сообщена длительность трека
	StatusPosition StatusMessage = 3 // Сообщена текущая позиция
	StatusError    StatusMessage = 9 // Ошибка нативной стороны
)

// String возвращает строковое представление тега сообщения
func (m StatusMessage) String() string {
	switch m {
	case StatusState:
		return "state"
	case StatusDuration:
		return "duration"
	case StatusPosition:
		return "position"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// PlaybackState код состояния воспроизведения, сообщаемый нативной стороной.
//
// Модель переходов None -> Starting -> Running <-> Paused -> Stopped
// информационная: нативная сторона авторитетна, этот слой не валидирует
// переходы и доверяет каждому сообщенному коду.
type PlaybackState int

const (
	StateNone     PlaybackState = iota // Ресурс создан, воспроизведение не начиналось
	StateStarting                      // Запуск воспроизведения
	StateRunning                       // Идет воспроизведение
	StatePaused                        // Воспроизведение приостановлено
	StateStopped                       // Воспроизведение завершено (терминальное)
)

// String возвращает строковое представление состояния
func (s PlaybackState) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// NativeErrorCode числовой код ошибки, определяемый нативной стороной.
// Слой прокси коды не интерпретирует, только доставляет в callback'и.
type NativeErrorCode int

const (
	NativeErrNone          NativeErrorCode = iota // Нет ошибки
	NativeErrAborted                              // Операция прервана
	NativeErrNetwork                              // Сетевая ошибка
	NativeErrDecode                               // Ошибка декодирования
	NativeErrNoneSupported                        // Формат не поддерживается
)

// String возвращает строковое представление кода ошибки
func (c NativeErrorCode) String() string {
	switch c {
	case NativeErrNone:
		return "None"
	case NativeErrAborted:
		return "Aborted"
	case NativeErrNetwork:
		return "Network"
	case NativeErrDecode:
		return "Decode"
	case NativeErrNoneSupported:
		return "NoneSupported"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}
