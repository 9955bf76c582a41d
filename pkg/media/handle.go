package media

import (
	"log/slog"
	"strconv"
	"sync"

	"github.com/minvt/Ext-Gap-Media/pkg/bridge"
)

// Значение кешированных duration/position до первого уведомления
const valueUnknown = -1

// SuccessCallback уведомление об успешном завершении воспроизведения
type SuccessCallback func()

// ErrorCallback уведомление об ошибке нативной стороны
type ErrorCallback func(code NativeErrorCode)

// StatusCallback уведомление о смене состояния воспроизведения
type StatusCallback func(state PlaybackState)

// PositionCallback доставка текущей позиции (мс)
type PositionCallback func(positionMs float64)

// AmplitudeCallback доставка текущей амплитуды записи (0.0-1.0)
type AmplitudeCallback func(amplitude float64)

// PlayOptions опции воспроизведения, передаваемые нативной стороне как есть
type PlayOptions map[string]interface{}

// Registrar минимальный контракт реестра, в котором живет handle.
// Используется для снятия регистрации при Release.
type Registrar interface {
	Unregister(handleID string) bool
}

// HandleConfig конфигурация создания handle
type HandleConfig struct {
	// Src локатор медиа ресурса (обязателен)
	Src string

	// OnSuccess вызывается при нормальном завершении воспроизведения (обязателен)
	OnSuccess SuccessCallback

	// OnError вызывается с числовым кодом ошибки нативной стороны
	OnError ErrorCallback

	// OnStatus вызывается при каждой смене состояния воспроизведения
	OnStatus StatusCallback

	// Logger логгер handle (nil - slog.Default)
	Logger *slog.Logger

	// DisableStateTracking выключает диагностический трекер состояний
	DisableStateTracking bool
}

// Handle клиентская ссылка на нативный медиа ресурс.
//
// Каждый метод-операция асинхронно отправляет одну команду через мост и
// ничего не возвращает: результаты приходят позже через callback'и или путь
// доставки статусов. Ошибки не повторяются и не бросаются синхронно.
//
// Мутации ограничены кешированными duration/position; callback'и фиксируются
// при создании и далее не меняются.
type Handle struct {
	id  string
	src string

	mu       sync.RWMutex
	duration float64
	position float64

	onSuccess SuccessCallback
	onError   ErrorCallback
	onStatus  StatusCallback

	br        bridge.Bridge
	registrar Registrar
	logger    *slog.Logger
	tracker   *stateTracker
}

// NewHandle создает handle с проверкой обязательных аргументов.
//
// Нарушение формы обязательных аргументов возвращает типизированную ошибку
// до какого-либо обращения к мосту. Команда create нативной стороне
// отправляется отдельно (см. Create): менеджер сначала регистрирует handle
// в реестре, затем инициирует создание нативного ресурса.
//
// registrar может быть nil: тогда запись реестра сохраняется после Release
// (legacy поведение).
func NewHandle(id string, config HandleConfig, br bridge.Bridge, registrar Registrar) (*Handle, error) {
	if id == "" {
		return nil, NewMediaError(ErrorCodeInvalidConfig, "", "id не может быть пустым")
	}
	if config.Src == "" {
		return nil, NewMediaError(ErrorCodeSrcEmpty, id, "src не может быть пустым")
	}
	if config.OnSuccess == nil {
		return nil, NewMediaError(ErrorCodeCallbackMissing, id, "OnSuccess обязателен")
	}
	if br == nil {
		return nil, NewMediaError(ErrorCodeBridgeMissing, id, "мост не может быть nil")
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	h := &Handle{
		id:        id,
		src:       config.Src,
		duration:  valueUnknown,
		position:  valueUnknown,
		onSuccess: config.OnSuccess,
		onError:   config.OnError,
		onStatus:  config.OnStatus,
		br:        br,
		registrar: registrar,
		logger:    config.Logger,
	}
	if !config.DisableStateTracking {
		h.tracker = newStateTracker(id, config.Logger)
	}
	return h, nil
}

// ID возвращает уникальный идентификатор handle
func (h *Handle) ID() string {
	return h.id
}

// Src возвращает локатор медиа ресурса
func (h *Handle) Src() string {
	return h.src
}

// Duration возвращает кешированную длительность трека (мс).
// До первого DURATION уведомления нативной стороны возвращает -1.
// Обращения к мосту не выполняет.
func (h *Handle) Duration() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.duration
}

// Position возвращает кешированную позицию воспроизведения (мс).
// До первого POSITION уведомления возвращает -1. Обращения к мосту не
// выполняет; актуальное значение запрашивается через GetCurrentPosition.
func (h *Handle) Position() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.position
}

// TrackedState возвращает последнее наблюдаемое трекером состояние или
// пустую строку, если трекер выключен
func (h *Handle) TrackedState() string {
	if h.tracker == nil {
		return ""
	}
	return h.tracker.Current()
}

// Create отправляет команду create нативной стороне.
//
// Вызывается менеджером сразу после регистрации handle в реестре. Команда
// fire-and-forget: ошибки создания приходят позже через error callback.
func (h *Handle) Create() {
	h.exec(bridge.ActionCreate, []interface{}{h.id, h.src}, nil, nil)
}

// Play начинает воспроизведение. options передаются нативной стороне как есть.
func (h *Handle) Play(options PlayOptions) {
	h.exec(bridge.ActionStartPlaying, []interface{}{h.id, h.src, options}, nil, nil)
}

// Pause приостанавливает воспроизведение
func (h *Handle) Pause() {
	h.exec(bridge.ActionPausePlaying, []interface{}{h.id}, nil, nil)
}

// Stop останавливает воспроизведение. При подтверждении команды мостом
// кешированная позиция сбрасывается в 0.
func (h *Handle) Stop() {
	h.exec(bridge.ActionStopPlaying, []interface{}{h.id}, func(interface{}) {
		h.setPosition(0)
	}, nil)
}

// SeekTo перематывает на позицию ms (мс). При подтверждении команды
// кешированная позиция устанавливается в значение, сообщенное нативной
// стороной.
func (h *Handle) SeekTo(ms float64) {
	h.exec(bridge.ActionSeekTo, []interface{}{h.id, ms}, func(result interface{}) {
		h.setPosition(toFloat(result))
	}, nil)
}

// GetCurrentPosition запрашивает у нативной стороны текущую позицию.
// При успехе кеш обновляется и вызывается success; при ошибке - fail либо
// error callback handle.
func (h *Handle) GetCurrentPosition(success PositionCallback, fail ErrorCallback) {
	h.exec(bridge.ActionGetCurrentPosition, []interface{}{h.id}, func(result interface{}) {
		pos := toFloat(result)
		h.setPosition(pos)
		if success != nil {
			success(pos)
		}
	}, fail)
}

// StartRecord начинает запись в src
func (h *Handle) StartRecord() {
	h.exec(bridge.ActionStartRecording, []interface{}{h.id, h.src}, nil, nil)
}

// StopRecord останавливает запись
func (h *Handle) StopRecord() {
	h.exec(bridge.ActionStopRecording, []interface{}{h.id}, nil, nil)
}

// PauseRecord приостанавливает запись
func (h *Handle) PauseRecord() {
	h.exec(bridge.ActionPauseRecording, []interface{}{h.id}, nil, nil)
}

// ResumeRecord возобновляет приостановленную запись
func (h *Handle) ResumeRecord() {
	h.exec(bridge.ActionResumeRecording, []interface{}{h.id}, nil, nil)
}

// StartRecordAsync начинает асинхронную запись в src
func (h *Handle) StartRecordAsync() {
	h.exec(bridge.ActionStartRecordAsync, []interface{}{h.id, h.src}, nil, nil)
}

// StopRecordAsync останавливает асинхронную запись
func (h *Handle) StopRecordAsync() {
	h.exec(bridge.ActionStopRecordAsync, []interface{}{h.id}, nil, nil)
}

// SetVolume устанавливает громкость воспроизведения (0.0-1.0).
// Диапазон не валидируется: нативная сторона авторитетна.
func (h *Handle) SetVolume(volume float64) {
	h.exec(bridge.ActionSetVolume, []interface{}{h.id, volume}, nil, nil)
}

// SetRate устанавливает скорость воспроизведения
func (h *Handle) SetRate(rate float64) {
	h.exec(bridge.ActionSetRate, []interface{}{h.id, rate}, nil, nil)
}

// GetCurrentAmplitude запрашивает текущую амплитуду записи.
// Значение не кешируется: амплитуда мгновенна.
func (h *Handle) GetCurrentAmplitude(success AmplitudeCallback, fail ErrorCallback) {
	h.exec(bridge.ActionGetAmplitude, []interface{}{h.id}, func(result interface{}) {
		if success != nil {
			success(toFloat(result))
		}
	}, fail)
}

// Release освобождает нативный ресурс.
//
// Если handle был создан с registrar, запись реестра снимается сразу после
// постановки команды в очередь: дальнейшие уведомления для этого id будут
// отброшены диспетчером. При nil registrar запись сохраняется (legacy).
func (h *Handle) Release() {
	h.exec(bridge.ActionRelease, []interface{}{h.id}, nil, nil)
	if h.registrar != nil {
		h.registrar.Unregister(h.id)
	}
}

// DeliverStatus применяет асинхронное уведомление нативной стороны.
//
// Единственная точка входа обратного пути: вызывается диспетчером после
// разрешения id в живой handle. Неизвестный тег логируется и отбрасывается
// без изменения состояния.
func (h *Handle) DeliverStatus(msg StatusMessage, value float64) {
	switch msg {
	case StatusState:
		state := PlaybackState(int(value))
		if h.tracker != nil {
			h.tracker.Observe(state)
		}
		if h.onStatus != nil {
			h.onStatus(state)
		}
		// Терминальное состояние трактуется как нормальное завершение
		if state == StateStopped {
			h.onSuccess()
		}

	case StatusDuration:
		h.setDuration(value)

	case StatusPosition:
		h.setPosition(value)

	case StatusError:
		if h.onError != nil {
			h.onError(NativeErrorCode(int(value)))
		}

	default:
		h.logger.Warn("media.DeliverStatus: необработанный тип сообщения",
			"handle_id", h.id,
			"msg_type", int(msg),
			"value", value)
	}
}

// exec отправляет одну команду через мост, подключая путь ошибок:
// fail вызывающего либо error callback handle.
func (h *Handle) exec(action string, args []interface{}, onSuccess func(interface{}), fail ErrorCallback) {
	errCb := fail
	if errCb == nil {
		errCb = h.onError
	}

	cmd := bridge.Command{
		Service:   bridge.ServiceMedia,
		Action:    action,
		HandleID:  h.id,
		Args:      args,
		OnSuccess: onSuccess,
	}
	if errCb != nil {
		cb := errCb
		cmd.OnError = func(err error) {
			h.logger.Debug("media.Handle: команда завершилась ошибкой",
				"handle_id", h.id, "action", action, "error", err)
			cb(NativeCodeOf(err))
		}
	}

	h.br.Exec(cmd)
}

func (h *Handle) setDuration(v float64) {
	h.mu.Lock()
	h.duration = v
	h.mu.Unlock()
}

func (h *Handle) setPosition(v float64) {
	h.mu.Lock()
	h.position = v
	h.mu.Unlock()
}

// toFloat приводит значение, пришедшее через мост, к числу.
// Непреобразуемые значения дают 0.
func toFloat(v interface{}) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case float32:
		return float64(value)
	case int:
		return float64(value)
	case int32:
		return float64(value)
	case int64:
		return float64(value)
	case uint:
		return float64(value)
	case uint64:
		return float64(value)
	case string:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0
		}
		return f
	case nil:
		return 0
	default:
		return 0
	}
}
