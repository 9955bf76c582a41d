package media

import (
	"context"
	"errors"
	"log/slog"

	"github.com/looplab/fsm"
)

// stateTracker диагностический трекер состояний воспроизведения.
//
// Отслеживает сообщаемые нативной стороной состояния вдоль информационной
// модели None -> Starting -> Running <-> Paused -> Stopped. Трекер пассивен:
// переход вне модели логируется на уровне Debug и применяется принудительно,
// но никогда не отклоняется - нативная сторона авторитетна.
type stateTracker struct {
	handleID     string
	stateMachine *fsm.FSM
	logger       *slog.Logger
}

// newStateTracker создает трекер в начальном состоянии none
func newStateTracker(handleID string, logger *slog.Logger) *stateTracker {
	return &stateTracker{
		handleID: handleID,
		logger:   logger,
		stateMachine: fsm.NewFSM(
			StateNone.String(),
			fsm.Events{
				// Запуск воспроизведения
				{Name: "starting", Src: []string{"none", "stopped"}, Dst: "starting"},
				// Начало или возобновление воспроизведения
				{Name: "running", Src: []string{"starting", "paused"}, Dst: "running"},
				// Приостановка
				{Name: "paused", Src: []string{"running"}, Dst: "paused"},
				// Терминальное состояние
				{Name: "stopped", Src: []string{"starting", "running", "paused"}, Dst: "stopped"},
			},
			fsm.Callbacks{},
		),
	}
}

// Observe применяет сообщенное состояние к трекеру
func (t *stateTracker) Observe(state PlaybackState) {
	name := state.String()

	if t.stateMachine.Current() == name {
		return
	}

	// none не имеет входящего события в модели, применяем напрямую
	if state == StateNone {
		t.forceState(name)
		return
	}

	err := t.stateMachine.Event(context.Background(), name)
	if err == nil {
		return
	}

	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return
	}

	t.forceState(name)
}

// forceState принудительно применяет состояние вне модели переходов
func (t *stateTracker) forceState(name string) {
	t.logger.Debug("media.stateTracker: переход вне модели, применяем принудительно",
		"handle_id", t.handleID,
		"from", t.stateMachine.Current(),
		"to", name)
	t.stateMachine.SetState(name)
}

// Current возвращает последнее наблюдаемое состояние
func (t *stateTracker) Current() string {
	return t.stateMachine.Current()
}
