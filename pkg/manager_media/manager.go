package manager_media

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/minvt/Ext-Gap-Media/pkg/bridge"
	"github.com/minvt/Ext-Gap-Media/pkg/media"
)

// Проверки на соответствие интерфейсам во время компиляции
var (
	_ ManagerInterface  = (*MediaManager)(nil)
	_ media.Registrar   = (*MediaManager)(nil)
	_ bridge.StatusSink = (*MediaManager)(nil)
)

// MediaManager основная реализация менеджера медиа handle'ов.
//
// Владеет реестром id -> Handle и является единственной точкой входа
// обратного пути: нативная сторона сообщает статусы через OnStatus, менеджер
// разрешает id в живой handle и доставляет уведомление его callback'ам.
// Уведомления для неизвестных id отбрасываются с диагностикой - это не
// ошибка, поднимать ее некому.
type MediaManager struct {
	config  ManagerConfig
	br      bridge.Bridge
	logger  *slog.Logger
	metrics *managerMetrics

	handles      map[string]*media.Handle
	handlesMutex sync.RWMutex
}

// NewMediaManager создает новый менеджер медиа handle'ов
func NewMediaManager(config ManagerConfig) (*MediaManager, error) {
	if config.Bridge == nil {
		return nil, media.NewMediaError(media.ErrorCodeBridgeMissing, "", "мост не может быть nil")
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.MetricsNamespace == "" {
		config.MetricsNamespace = DefaultManagerConfig().MetricsNamespace
	}

	mm := &MediaManager{
		config:  config,
		br:      config.Bridge,
		logger:  config.Logger,
		handles: make(map[string]*media.Handle),
	}

	if config.MetricsRegisterer != nil {
		mm.metrics = newManagerMetrics(config.MetricsRegisterer, config.MetricsNamespace)
		// Мост оборачивается для подсчета команд по действиям
		mm.br = &instrumentedBridge{inner: config.Bridge, metrics: mm.metrics}
	}

	return mm, nil
}

// CreateHandle создает handle для src из конфигурации.
//
// Последовательность фиксирована: генерация уникального id, регистрация в
// реестре, отправка команды create через мост. Нарушение формы обязательных
// аргументов возвращает ошибку до какого-либо обращения к мосту; ошибки
// самого создания приходят позже через error callback handle.
func (mm *MediaManager) CreateHandle(config media.HandleConfig) (*media.Handle, error) {
	handleID := uuid.New().String()

	if config.Logger == nil {
		config.Logger = mm.logger
	}
	if mm.config.DisableStateTracking {
		config.DisableStateTracking = true
	}

	var registrar media.Registrar
	if !mm.config.RetainReleased {
		registrar = mm
	}

	h, err := media.NewHandle(handleID, config, mm.br, registrar)
	if err != nil {
		return nil, err
	}

	if err := mm.Register(h); err != nil {
		return nil, err
	}

	h.Create()

	mm.logger.Debug("manager_media.CreateHandle: handle создан",
		"handle_id", handleID, "src", config.Src)

	if mm.config.OnHandleCreated != nil {
		mm.config.OnHandleCreated(handleID)
	}

	return h, nil
}

// Register добавляет handle в реестр
func (mm *MediaManager) Register(h *media.Handle) error {
	mm.handlesMutex.Lock()
	defer mm.handlesMutex.Unlock()

	if _, exists := mm.handles[h.ID()]; exists {
		return media.NewMediaError(media.ErrorCodeHandleDuplicate, h.ID(),
			"handle уже зарегистрирован")
	}

	mm.handles[h.ID()] = h
	if mm.metrics != nil {
		mm.metrics.handlesCreated.Inc()
		mm.metrics.handlesActive.Inc()
	}
	return nil
}

// Unregister снимает регистрацию handle. Возвращает true, если запись была.
func (mm *MediaManager) Unregister(handleID string) bool {
	mm.handlesMutex.Lock()
	_, exists := mm.handles[handleID]
	if exists {
		delete(mm.handles, handleID)
	}
	mm.handlesMutex.Unlock()

	if !exists {
		return false
	}

	if mm.metrics != nil {
		mm.metrics.handlesActive.Dec()
	}
	if mm.config.OnHandleReleased != nil {
		mm.config.OnHandleReleased(handleID)
	}
	return true
}

// Get возвращает живой handle по id
func (mm *MediaManager) Get(handleID string) (*media.Handle, bool) {
	mm.handlesMutex.RLock()
	defer mm.handlesMutex.RUnlock()

	h, ok := mm.handles[handleID]
	return h, ok
}

// List возвращает id всех зарегистрированных handle'ов
func (mm *MediaManager) List() []string {
	mm.handlesMutex.RLock()
	defer mm.handlesMutex.RUnlock()

	ids := make([]string, 0, len(mm.handles))
	for handleID := range mm.handles {
		ids = append(ids, handleID)
	}
	return ids
}

// Count возвращает количество зарегистрированных handle'ов
func (mm *MediaManager) Count() int {
	mm.handlesMutex.RLock()
	defer mm.handlesMutex.RUnlock()
	return len(mm.handles)
}

// OnStatus диспетчеризует уведомление нативной стороны в handle по id.
//
// Неизвестный id означает, что уведомление целиком отбрасывается с
// диагностикой: handle'а, которому можно было бы поднять ошибку, нет.
func (mm *MediaManager) OnStatus(handleID string, msg media.StatusMessage, value float64) {
	mm.handlesMutex.RLock()
	h, ok := mm.handles[handleID]
	mm.handlesMutex.RUnlock()

	if !ok {
		mm.logger.Warn("manager_media.OnStatus: уведомление для неизвестного handle отброшено",
			"handle_id", handleID, "msg_type", msg.String(), "value", value)
		if mm.metrics != nil {
			mm.metrics.statusesDropped.Inc()
		}
		if mm.config.OnStatusDropped != nil {
			mm.config.OnStatusDropped(handleID, msg)
		}
		return
	}

	if mm.metrics != nil {
		mm.metrics.statusesTotal.WithLabelValues(msg.String()).Inc()
	}

	h.DeliverStatus(msg, value)
}

// OnNativeStatus реализует bridge.StatusSink, принимая сырое числовое
// wire представление уведомления
func (mm *MediaManager) OnNativeStatus(handleID string, msgType int, value float64) {
	mm.OnStatus(handleID, media.StatusMessage(msgType), value)
}

// Stop останавливает менеджер, освобождая все зарегистрированные handle'ы
func (mm *MediaManager) Stop() {
	mm.handlesMutex.Lock()
	remaining := make([]*media.Handle, 0, len(mm.handles))
	for _, h := range mm.handles {
		remaining = append(remaining, h)
	}
	mm.handles = make(map[string]*media.Handle)
	mm.handlesMutex.Unlock()

	for _, h := range remaining {
		h.Release()
		if mm.metrics != nil {
			mm.metrics.handlesActive.Dec()
		}
		if mm.config.OnHandleReleased != nil {
			mm.config.OnHandleReleased(h.ID())
		}
	}
}
