// Package bridge определяет асинхронный мост между прокси слоем медиа
// handle'ов и нативной реализацией воспроизведения/записи.
//
// Вся реальная работа с медиа (декодирование, устройства, запись файлов)
// выполняется по другую сторону моста. Этот пакет описывает только контракт:
//
//   - Command - дескриптор одной команды с callback'ами завершения
//   - Bridge - интерфейс асинхронного исполнителя команд
//   - Backend - синхронная исполняющая сторона для LocalBridge
//   - StatusSink - приемник асинхронных уведомлений от нативной стороны
//
// Мост гарантирует вызов не более одного callback'а завершения на команду.
// Таймауты не обрабатываются: слой предполагает eventual delivery.
//
// # Быстрый старт
//
//	player := bridge.NewSimulatedPlayer(bridge.SimulatedPlayerConfig{Sink: sink})
//	br, err := bridge.NewLocalBridge(player, bridge.DefaultLocalBridgeConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	br.Start()
//	defer br.Stop()
//
//	br.Exec(bridge.Command{
//	    Action:   bridge.ActionCreate,
//	    HandleID: "handle-1",
//	    Args:     []interface{}{"handle-1", "track.mp3"},
//	})
package bridge
