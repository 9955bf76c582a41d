package bridge

// ServiceMedia имя нативного сервиса, обслуживающего команды медиа слоя.
const ServiceMedia = "Media"

// Имена действий нативного сервиса. Строковые идентификаторы являются частью
// wire протокола и не подлежат изменению.
const (
	ActionCreate             = "create"
	ActionStartPlaying       = "startPlayingAudio"
	ActionStopPlaying        = "stopPlayingAudio"
	ActionSeekTo             = "seekToAudio"
	ActionPausePlaying       = "pausePlayingAudio"
	ActionGetCurrentPosition = "getCurrentPositionAudio"
	ActionStartRecording     = "startRecordingAudio"
	ActionStopRecording      = "stopRecordingAudio"
	ActionPauseRecording     = "pauseRecordingAudio"
	ActionResumeRecording    = "resumeRecordingAudio"
	ActionRelease            = "release"
	ActionSetVolume          = "setVolume"
	ActionSetRate            = "setRate"
	ActionGetAmplitude       = "getCurrentAmplitudeAudio"
	ActionStartRecordAsync   = "startRecordAsync"
	ActionStopRecordAsync    = "stopRecordAsync"
)

// Command описывает одну команду, пересекающую мост.
//
// HandleID служит ключом корреляции между прокси слоем и нативной стороной.
// Args - позиционный список аргументов действия (первым всегда идет id).
// Callback'и завершения опциональны; мост вызывает не более одного из них.
type Command struct {
	Service  string        // Имя нативного сервиса (по умолчанию ServiceMedia)
	Action   string        // Имя действия (см. константы Action*)
	HandleID string        // Идентификатор handle
	Args     []interface{} // Позиционные аргументы действия

	OnSuccess func(result interface{}) // Успешное завершение команды
	OnError   func(err error)          // Ошибка выполнения команды
}

// Bridge асинхронный исполнитель команд на нативной стороне.
//
// Exec не блокирует вызывающего и ничего не возвращает: результат приходит
// позже через callback'и команды. Отмена отправленной команды не
// поддерживается.
type Bridge interface {
	Exec(cmd Command)
}

// Backend синхронная исполняющая сторона LocalBridge.
// Execute выполняет действие и возвращает результат или ошибку.
type Backend interface {
	Execute(action, handleID string, args []interface{}) (interface{}, error)
}

// StatusSink приемник асинхронных уведомлений нативной стороны.
//
// msgType и value передаются в сыром числовом wire представлении;
// типизация выполняется на принимающей стороне (см. pkg/media).
type StatusSink interface {
	OnNativeStatus(handleID string, msgType int, value float64)
}
