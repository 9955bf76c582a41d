package bridge

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink накапливает уведомления симулятора
type recordingSink struct {
	mu     sync.Mutex
	events []sinkEvent
}

type sinkEvent struct {
	handleID string
	msgType  int
	value    float64
}

func (s *recordingSink) OnNativeStatus(handleID string, msgType int, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, sinkEvent{handleID, msgType, value})
}

func (s *recordingSink) recorded() []sinkEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sinkEvent(nil), s.events...)
}

func newTestSimulator(t *testing.T) (*SimulatedPlayer, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	sp, err := NewSimulatedPlayer(SimulatedPlayerConfig{
		Sink:      sink,
		Durations: map[string]float64{"track.mp3": 30000},
	})
	require.NoError(t, err)
	return sp, sink
}

func createPlayer(t *testing.T, sp *SimulatedPlayer, handleID, src string) {
	t.Helper()
	_, err := sp.Execute(ActionCreate, handleID, []interface{}{handleID, src})
	require.NoError(t, err)
}

func TestNewSimulatedPlayer_RequiresSink(t *testing.T) {
	_, err := NewSimulatedPlayer(SimulatedPlayerConfig{})
	require.Error(t, err)
}

func TestSimulatedPlayer_CreateAndPlay(t *testing.T) {
	sp, sink := newTestSimulator(t)
	createPlayer(t, sp, "h1", "track.mp3")

	_, err := sp.Execute(ActionStartPlaying, "h1", []interface{}{"h1", "track.mp3", nil})
	require.NoError(t, err)

	events := sink.recorded()
	require.Len(t, events, 3)
	assert.Equal(t, sinkEvent{"h1", simMsgState, simStateStarting}, events[0])
	assert.Equal(t, sinkEvent{"h1", simMsgDuration, 30000}, events[1])
	assert.Equal(t, sinkEvent{"h1", simMsgState, simStateRunning}, events[2])

	state, ok := sp.Snapshot("h1")
	require.True(t, ok)
	assert.Equal(t, simStateRunning, state.State)
	assert.Equal(t, 30000.0, state.Duration)
}

func TestSimulatedPlayer_CreateValidation(t *testing.T) {
	sp, _ := newTestSimulator(t)

	// Пустой src дает кодированную ошибку
	_, err := sp.Execute(ActionCreate, "h1", []interface{}{"h1", ""})
	require.Error(t, err)
	var coded *CodedError
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, simErrAborted, coded.Code)

	// Повторное создание того же id
	createPlayer(t, sp, "h1", "track.mp3")
	_, err = sp.Execute(ActionCreate, "h1", []interface{}{"h1", "track.mp3"})
	require.Error(t, err)
}

func TestSimulatedPlayer_UnknownHandleAndAction(t *testing.T) {
	sp, _ := newTestSimulator(t)

	_, err := sp.Execute(ActionStartPlaying, "нет-такого", []interface{}{"нет-такого", "x"})
	require.Error(t, err)

	createPlayer(t, sp, "h1", "track.mp3")
	_, err = sp.Execute("unknownAction", "h1", nil)
	require.Error(t, err)
}

func TestSimulatedPlayer_SeekClampsToTrack(t *testing.T) {
	sp, _ := newTestSimulator(t)
	createPlayer(t, sp, "h1", "track.mp3")

	result, err := sp.Execute(ActionSeekTo, "h1", []interface{}{"h1", 5000.0})
	require.NoError(t, err)
	assert.Equal(t, 5000.0, result)

	// За пределами трека позиция ограничивается длительностью
	result, err = sp.Execute(ActionSeekTo, "h1", []interface{}{"h1", 99999999.0})
	require.NoError(t, err)
	assert.Equal(t, 30000.0, result)

	result, err = sp.Execute(ActionGetCurrentPosition, "h1", []interface{}{"h1"})
	require.NoError(t, err)
	assert.Equal(t, 30000.0, result)
}

func TestSimulatedPlayer_StopResetsPosition(t *testing.T) {
	sp, sink := newTestSimulator(t)
	createPlayer(t, sp, "h1", "track.mp3")

	_, err := sp.Execute(ActionStartPlaying, "h1", []interface{}{"h1", "track.mp3", nil})
	require.NoError(t, err)
	_, err = sp.Execute(ActionSeekTo, "h1", []interface{}{"h1", 5000.0})
	require.NoError(t, err)

	_, err = sp.Execute(ActionStopPlaying, "h1", []interface{}{"h1"})
	require.NoError(t, err)

	state, _ := sp.Snapshot("h1")
	assert.Equal(t, simStateStopped, state.State)
	assert.Equal(t, 0.0, state.Position)

	events := sink.recorded()
	assert.Equal(t, sinkEvent{"h1", simMsgState, simStateStopped}, events[len(events)-1])
}

func TestSimulatedPlayer_RecordingLifecycle(t *testing.T) {
	sp, _ := newTestSimulator(t)
	createPlayer(t, sp, "h1", "rec.wav")

	_, err := sp.Execute(ActionStartRecording, "h1", []interface{}{"h1", "rec.wav"})
	require.NoError(t, err)

	// Повторный старт записи отклоняется
	_, err = sp.Execute(ActionStartRecording, "h1", []interface{}{"h1", "rec.wav"})
	require.Error(t, err)

	// Амплитуда видна только при активной записи
	sp.SetAmplitude("h1", 0.8)
	result, err := sp.Execute(ActionGetAmplitude, "h1", []interface{}{"h1"})
	require.NoError(t, err)
	assert.Equal(t, 0.8, result)

	_, err = sp.Execute(ActionPauseRecording, "h1", []interface{}{"h1"})
	require.NoError(t, err)
	result, err = sp.Execute(ActionGetAmplitude, "h1", []interface{}{"h1"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, result)

	_, err = sp.Execute(ActionResumeRecording, "h1", []interface{}{"h1"})
	require.NoError(t, err)

	_, err = sp.Execute(ActionStopRecording, "h1", []interface{}{"h1"})
	require.NoError(t, err)

	state, _ := sp.Snapshot("h1")
	assert.False(t, state.Recording)
}

func TestSimulatedPlayer_RecordingWhilePlayingRejected(t *testing.T) {
	sp, _ := newTestSimulator(t)
	createPlayer(t, sp, "h1", "track.mp3")

	_, err := sp.Execute(ActionStartPlaying, "h1", []interface{}{"h1", "track.mp3", nil})
	require.NoError(t, err)

	_, err = sp.Execute(ActionStartRecording, "h1", []interface{}{"h1", "track.mp3"})
	require.Error(t, err)
}

func TestSimulatedPlayer_VolumeAndRateValidation(t *testing.T) {
	sp, _ := newTestSimulator(t)
	createPlayer(t, sp, "h1", "track.mp3")

	_, err := sp.Execute(ActionSetVolume, "h1", []interface{}{"h1", 0.5})
	require.NoError(t, err)
	_, err = sp.Execute(ActionSetVolume, "h1", []interface{}{"h1", 1.5})
	require.Error(t, err)

	_, err = sp.Execute(ActionSetRate, "h1", []interface{}{"h1", 2.0})
	require.NoError(t, err)
	_, err = sp.Execute(ActionSetRate, "h1", []interface{}{"h1", 0.0})
	require.Error(t, err)

	state, _ := sp.Snapshot("h1")
	assert.Equal(t, 0.5, state.Volume)
	assert.Equal(t, 2.0, state.Rate)
}

func TestSimulatedPlayer_TickAdvancesAndFinishes(t *testing.T) {
	sp, sink := newTestSimulator(t)
	createPlayer(t, sp, "h1", "track.mp3")

	_, err := sp.Execute(ActionStartPlaying, "h1", []interface{}{"h1", "track.mp3", nil})
	require.NoError(t, err)

	sp.Tick(10 * time.Second)
	state, _ := sp.Snapshot("h1")
	assert.Equal(t, 10000.0, state.Position)

	events := sink.recorded()
	assert.Equal(t, sinkEvent{"h1", simMsgPosition, 10000}, events[len(events)-1])

	// Трек 30с: следующий тик доигрывает до конца
	sp.Tick(25 * time.Second)
	state, _ = sp.Snapshot("h1")
	assert.Equal(t, simStateStopped, state.State)
	assert.Equal(t, 0.0, state.Position)

	events = sink.recorded()
	require.GreaterOrEqual(t, len(events), 2)
	assert.Equal(t, sinkEvent{"h1", simMsgPosition, 30000}, events[len(events)-2])
	assert.Equal(t, sinkEvent{"h1", simMsgState, simStateStopped}, events[len(events)-1])
}

func TestSimulatedPlayer_ReleaseRemovesPlayer(t *testing.T) {
	sp, _ := newTestSimulator(t)
	createPlayer(t, sp, "h1", "track.mp3")

	_, err := sp.Execute(ActionRelease, "h1", []interface{}{"h1"})
	require.NoError(t, err)

	_, ok := sp.Snapshot("h1")
	assert.False(t, ok)
}

func TestSimulatedPlayer_InjectError(t *testing.T) {
	sp, sink := newTestSimulator(t)
	createPlayer(t, sp, "h1", "track.mp3")

	sp.InjectError("h1", 3)

	events := sink.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, sinkEvent{"h1", simMsgError, 3}, events[0])
}
