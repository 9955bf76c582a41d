package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Проверка на соответствие интерфейсу во время компиляции
var _ Bridge = (*LocalBridge)(nil)

// Ошибки моста, доставляемые через OnError команды.
var (
	// ErrBridgeClosed мост остановлен, команда не будет выполнена
	ErrBridgeClosed = errors.New("bridge: мост остановлен")
	// ErrQueueFull очередь команд переполнена, команда отброшена
	ErrQueueFull = errors.New("bridge: очередь команд переполнена")
)

// LocalBridgeConfig конфигурация внутрипроцессного моста
type LocalBridgeConfig struct {
	QueueSize int          // Размер очереди команд
	Logger    *slog.Logger // Логгер (nil - slog.Default)
}

// DefaultLocalBridgeConfig возвращает конфигурацию по умолчанию
func DefaultLocalBridgeConfig() LocalBridgeConfig {
	return LocalBridgeConfig{
		QueueSize: 64,
	}
}

// LocalBridge внутрипроцессная реализация Bridge.
//
// Команды складываются в буферизованную очередь и выполняются одним worker
// goroutine на синхронном Backend. Порядок выполнения совпадает с порядком
// постановки в очередь; порядок завершения между незавершенными командами
// разных handle'ов этим не гарантируется для других реализаций Bridge.
type LocalBridge struct {
	backend Backend
	queue   chan Command
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewLocalBridge создает новый внутрипроцессный мост
func NewLocalBridge(backend Backend, config LocalBridgeConfig) (*LocalBridge, error) {
	if backend == nil {
		return nil, fmt.Errorf("bridge: backend не может быть nil")
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultLocalBridgeConfig().QueueSize
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &LocalBridge{
		backend: backend,
		queue:   make(chan Command, config.QueueSize),
		logger:  config.Logger,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Start запускает worker goroutine моста
func (b *LocalBridge) Start() {
	b.startOnce.Do(func() {
		b.wg.Add(1)
		go b.workerLoop()
	})
}

// Stop останавливает мост. Команды, оставшиеся в очереди, отклоняются
// через OnError с ErrBridgeClosed.
func (b *LocalBridge) Stop() {
	b.stopOnce.Do(func() {
		b.cancel()
		b.wg.Wait()
		b.drain()
	})
}

// Exec ставит команду в очередь. Не блокирует вызывающего: при переполнении
// очереди команда отбрасывается с ErrQueueFull, после остановки моста -
// с ErrBridgeClosed.
func (b *LocalBridge) Exec(cmd Command) {
	if cmd.Service == "" {
		cmd.Service = ServiceMedia
	}

	select {
	case <-b.ctx.Done():
		b.reject(cmd, ErrBridgeClosed)
		return
	default:
	}

	select {
	case b.queue <- cmd:
	default:
		b.logger.Warn("bridge.Exec: очередь переполнена, команда отброшена",
			"action", cmd.Action, "handle_id", cmd.HandleID)
		b.reject(cmd, ErrQueueFull)
	}
}

func (b *LocalBridge) workerLoop() {
	defer b.wg.Done()
	b.logger.Debug("bridge.workerLoop Started")

	for {
		select {
		case <-b.ctx.Done():
			b.logger.Debug("bridge.workerLoop Stopped")
			return
		case cmd := <-b.queue:
			b.dispatch(cmd)
		}
	}
}

// dispatch выполняет команду на backend и вызывает ровно один callback
func (b *LocalBridge) dispatch(cmd Command) {
	result, err := b.backend.Execute(cmd.Action, cmd.HandleID, cmd.Args)
	if err != nil {
		b.logger.Debug("bridge.dispatch: команда завершилась ошибкой",
			"action", cmd.Action, "handle_id", cmd.HandleID, "error", err)
		b.reject(cmd, err)
		return
	}
	if cmd.OnSuccess != nil {
		cmd.OnSuccess(result)
	}
}

func (b *LocalBridge) reject(cmd Command, err error) {
	if cmd.OnError != nil {
		cmd.OnError(err)
	}
}

// drain отклоняет команды, оставшиеся в очереди после остановки worker'а
func (b *LocalBridge) drain() {
	for {
		select {
		case cmd := <-b.queue:
			b.reject(cmd, ErrBridgeClosed)
		default:
			return
		}
	}
}
