package bridge

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Проверка на соответствие интерфейсу во время компиляции
var _ Backend = (*SimulatedPlayer)(nil)

// Сырые wire значения сообщений и состояний нативной стороны.
// Типизированные аналоги живут в pkg/media; здесь только числа протокола.
const (
	simMsgState    = 1
	simMsgDuration = 2
	simMsgPosition = 3
	simMsgError    = 9

	simStateStarting = 1
	simStateRunning  = 2
	simStatePaused   = 3
	simStateStopped  = 4

	simErrAborted = 1
)

// DefaultSimulatedDuration длительность трека по умолчанию (мс)
const DefaultSimulatedDuration = 60000.0

// SimulatedPlayerConfig конфигурация симулятора нативного плеера
type SimulatedPlayerConfig struct {
	Sink            StatusSink         // Приемник уведомлений (обязателен)
	Durations       map[string]float64 // src -> длительность трека (мс)
	DefaultDuration float64            // Длительность для неизвестных src (мс)
	Logger          *slog.Logger       // Логгер (nil - slog.Default)
}

// SimulatedPlayerState моментальный снимок состояния одного плеера
type SimulatedPlayerState struct {
	Src       string  // Источник медиа
	State     int     // Wire код состояния воспроизведения
	Duration  float64 // Длительность (мс)
	Position  float64 // Текущая позиция (мс)
	Volume    float64 // Громкость 0.0-1.0
	Rate      float64 // Скорость воспроизведения
	Recording bool    // Идет запись
}

type simPlayer struct {
	src         string
	state       int
	duration    float64
	position    float64
	volume      float64
	rate        float64
	recording   bool
	recordPause bool
	amplitude   float64
}

// statusEvent отложенное уведомление; отправляется после снятия блокировки
type statusEvent struct {
	handleID string
	msgType  int
	value    float64
}

// SimulatedPlayer симулятор нативной медиа стороны для примеров и тестов.
//
// Реализует Backend: отвечает на команды моста и проталкивает
// STATE/DURATION/POSITION/ERROR уведомления в StatusSink. Времена считаются
// в миллисекундах. Tick продвигает позицию играющих плееров, имитируя
// реальное воспроизведение.
type SimulatedPlayer struct {
	mu      sync.Mutex
	players map[string]*simPlayer
	config  SimulatedPlayerConfig
	logger  *slog.Logger
}

// NewSimulatedPlayer создает симулятор нативного плеера
func NewSimulatedPlayer(config SimulatedPlayerConfig) (*SimulatedPlayer, error) {
	if config.Sink == nil {
		return nil, fmt.Errorf("bridge: Sink не может быть nil")
	}
	if config.DefaultDuration <= 0 {
		config.DefaultDuration = DefaultSimulatedDuration
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &SimulatedPlayer{
		players: make(map[string]*simPlayer),
		config:  config,
		logger:  config.Logger,
	}, nil
}

// Execute выполняет действие нативного сервиса. Вызывается worker'ом моста.
func (sp *SimulatedPlayer) Execute(action, handleID string, args []interface{}) (interface{}, error) {
	sp.mu.Lock()

	var (
		result interface{}
		err    error
		events []statusEvent
	)

	switch action {
	case ActionCreate:
		result, events, err = sp.doCreate(handleID, args)
	case ActionRelease:
		delete(sp.players, handleID)
	default:
		p, ok := sp.players[handleID]
		if !ok {
			err = fmt.Errorf("симулятор: неизвестный handle %s", handleID)
			break
		}
		result, events, err = sp.doAction(p, action, handleID, args)
	}

	sp.mu.Unlock()
	sp.emit(events)
	return result, err
}

func (sp *SimulatedPlayer) doCreate(handleID string, args []interface{}) (interface{}, []statusEvent, error) {
	if _, exists := sp.players[handleID]; exists {
		return nil, nil, fmt.Errorf("симулятор: handle %s уже создан", handleID)
	}

	src := argString(args, 1)
	if src == "" {
		return nil, nil, NewCodedError(simErrAborted, "пустой src")
	}

	duration := sp.config.DefaultDuration
	if d, ok := sp.config.Durations[src]; ok {
		duration = d
	}

	sp.players[handleID] = &simPlayer{
		src:      src,
		duration: duration,
		volume:   1.0,
		rate:     1.0,
	}
	return nil, nil, nil
}

func (sp *SimulatedPlayer) doAction(p *simPlayer, action, handleID string, args []interface{}) (interface{}, []statusEvent, error) {
	switch action {
	case ActionStartPlaying:
		if p.recording {
			return nil, nil, NewCodedError(simErrAborted, "идет запись")
		}
		p.state = simStateRunning
		return nil, []statusEvent{
			{handleID, simMsgState, simStateStarting},
			{handleID, simMsgDuration, p.duration},
			{handleID, simMsgState, simStateRunning},
		}, nil

	case ActionPausePlaying:
		if p.state != simStateRunning {
			return nil, nil, nil
		}
		p.state = simStatePaused
		return nil, []statusEvent{{handleID, simMsgState, simStatePaused}}, nil

	case ActionStopPlaying:
		if p.state != simStateRunning && p.state != simStatePaused && p.state != simStateStarting {
			return nil, nil, nil
		}
		p.state = simStateStopped
		p.position = 0
		return nil, []statusEvent{{handleID, simMsgState, simStateStopped}}, nil

	case ActionSeekTo:
		ms := argFloat(args, 1)
		if ms < 0 {
			ms = 0
		}
		if ms > p.duration {
			ms = p.duration
		}
		p.position = ms
		return ms, nil, nil

	case ActionGetCurrentPosition:
		return p.position, nil, nil

	case ActionStartRecording, ActionStartRecordAsync:
		if p.state == simStateRunning {
			return nil, nil, NewCodedError(simErrAborted, "идет воспроизведение")
		}
		if p.recording {
			return nil, nil, NewCodedError(simErrAborted, "запись уже идет")
		}
		p.recording = true
		p.recordPause = false
		return nil, nil, nil

	case ActionStopRecording, ActionStopRecordAsync:
		p.recording = false
		p.recordPause = false
		p.amplitude = 0
		return nil, nil, nil

	case ActionPauseRecording:
		if !p.recording {
			return nil, nil, NewCodedError(simErrAborted, "запись не идет")
		}
		p.recordPause = true
		return nil, nil, nil

	case ActionResumeRecording:
		if !p.recording {
			return nil, nil, NewCodedError(simErrAborted, "запись не идет")
		}
		p.recordPause = false
		return nil, nil, nil

	case ActionSetVolume:
		v := argFloat(args, 1)
		if v < 0 || v > 1 {
			return nil, nil, fmt.Errorf("симулятор: громкость %v вне диапазона [0, 1]", v)
		}
		p.volume = v
		return nil, nil, nil

	case ActionSetRate:
		rate := argFloat(args, 1)
		if rate <= 0 {
			return nil, nil, fmt.Errorf("симулятор: скорость %v должна быть больше 0", rate)
		}
		p.rate = rate
		return nil, nil, nil

	case ActionGetAmplitude:
		if !p.recording || p.recordPause {
			return 0.0, nil, nil
		}
		return p.amplitude, nil, nil

	default:
		return nil, nil, fmt.Errorf("симулятор: неизвестное действие %q", action)
	}
}

// Tick продвигает позицию всех играющих плееров на elapsed, рассылая
// POSITION уведомления. Плеер, доигравший до конца трека, останавливается
// с отправкой терминального STATE.
func (sp *SimulatedPlayer) Tick(elapsed time.Duration) {
	ms := float64(elapsed.Milliseconds())

	sp.mu.Lock()
	var events []statusEvent
	for handleID, p := range sp.players {
		if p.state != simStateRunning {
			continue
		}
		p.position += ms * p.rate
		if p.position >= p.duration {
			p.position = 0
			p.state = simStateStopped
			events = append(events,
				statusEvent{handleID, simMsgPosition, p.duration},
				statusEvent{handleID, simMsgState, simStateStopped})
			continue
		}
		events = append(events, statusEvent{handleID, simMsgPosition, p.position})
	}
	sp.mu.Unlock()

	sp.emit(events)
}

// InjectError имитирует асинхронную ошибку нативной стороны для handleID
func (sp *SimulatedPlayer) InjectError(handleID string, code int) {
	sp.emit([]statusEvent{{handleID, simMsgError, float64(code)}})
}

// SetAmplitude задает амплитуду записи, возвращаемую getCurrentAmplitudeAudio
func (sp *SimulatedPlayer) SetAmplitude(handleID string, amplitude float64) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if p, ok := sp.players[handleID]; ok {
		p.amplitude = amplitude
	}
}

// Snapshot возвращает снимок состояния плеера или false, если его нет
func (sp *SimulatedPlayer) Snapshot(handleID string) (SimulatedPlayerState, bool) {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	p, ok := sp.players[handleID]
	if !ok {
		return SimulatedPlayerState{}, false
	}
	return SimulatedPlayerState{
		Src:       p.src,
		State:     p.state,
		Duration:  p.duration,
		Position:  p.position,
		Volume:    p.volume,
		Rate:      p.rate,
		Recording: p.recording,
	}, true
}

// emit рассылает уведомления в sink. Вызывается без удержания mu, чтобы
// обработчики могли свободно отправлять новые команды.
func (sp *SimulatedPlayer) emit(events []statusEvent) {
	for _, ev := range events {
		sp.config.Sink.OnNativeStatus(ev.handleID, ev.msgType, ev.value)
	}
}

// argString извлекает строковый аргумент по индексу
func argString(args []interface{}, idx int) string {
	if idx >= len(args) {
		return ""
	}
	s, _ := args[idx].(string)
	return s
}

// argFloat извлекает числовой аргумент по индексу
func argFloat(args []interface{}, idx int) float64 {
	if idx >= len(args) {
		return 0
	}
	switch v := args[idx].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}
