// Package manager_media реализует менеджер медиа handle'ов: реестр
// id -> Handle с явным жизненным циклом и единую точку входа диспетчеризации
// асинхронных уведомлений нативной стороны
package manager_media

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/minvt/Ext-Gap-Media/pkg/bridge"
	"github.com/minvt/Ext-Gap-Media/pkg/media"
)

// ManagerInterface определяет интерфейс менеджера медиа handle'ов
type ManagerInterface interface {
	// CreateHandle создает handle, регистрирует его в реестре и инициирует
	// создание нативного ресурса
	CreateHandle(config media.HandleConfig) (*media.Handle, error)

	// Get возвращает живой handle по id
	Get(handleID string) (*media.Handle, bool)

	// Register добавляет handle в реестр
	Register(h *media.Handle) error

	// Unregister снимает регистрацию handle, возвращая true если запись была
	Unregister(handleID string) bool

	// List возвращает id всех зарегистрированных handle'ов
	List() []string

	// Count возвращает количество зарегистрированных handle'ов
	Count() int

	// OnStatus диспетчеризует уведомление нативной стороны
	OnStatus(handleID string, msg media.StatusMessage, value float64)

	// Stop останавливает менеджер, освобождая все handle'ы
	Stop()
}

// ManagerConfig конфигурация менеджера медиа handle'ов
type ManagerConfig struct {
	// Bridge мост к нативной реализации (обязателен)
	Bridge bridge.Bridge

	// Logger логгер менеджера и создаваемых handle'ов (nil - slog.Default)
	Logger *slog.Logger

	// RetainReleased сохранять запись реестра после Release (legacy поведение
	// исходной системы; по умолчанию запись снимается)
	RetainReleased bool

	// DisableStateTracking выключает диагностический трекер состояний
	// у создаваемых handle'ов
	DisableStateTracking bool

	// MetricsRegisterer реестр Prometheus метрик (nil - метрики выключены)
	MetricsRegisterer prometheus.Registerer

	// MetricsNamespace префикс Prometheus метрик
	MetricsNamespace string

	// Обработчики событий
	OnHandleCreated  func(handleID string)                          // Создан новый handle
	OnHandleReleased func(handleID string)                          // Handle снят с регистрации
	OnStatusDropped  func(handleID string, msg media.StatusMessage) // Уведомление отброшено
}

// DefaultManagerConfig возвращает конфигурацию по умолчанию
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		MetricsNamespace: "media",
	}
}
