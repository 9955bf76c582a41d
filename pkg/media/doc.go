// Package media реализует клиентский прокси слой для управления
// воспроизведением и записью медиа через асинхронный нативный мост.
//
// Пакет не выполняет никакой реальной медиа работы: декодирование, доступ к
// устройствам и запись файлов живут по другую сторону моста (pkg/bridge).
// Здесь только Handle - клиентская ссылка на нативный медиа ресурс,
// сериализующая операции в команды моста и принимающая асинхронные
// уведомления о статусе.
//
// # Основные возможности
//
//   - Операции воспроизведения: Play, Pause, Stop, SeekTo, SetVolume, SetRate
//   - Операции записи: StartRecord, StopRecord, PauseRecord, ResumeRecord
//   - Кешированные duration/position, обновляемые уведомлениями нативной стороны
//   - Гибкая система callback'ов (успех, ошибка, смена состояния)
//   - Типизированные коды сообщений, состояний и ошибок с сохранением
//     числовых wire значений
//   - Диагностический трекер состояний на базе конечного автомата
//   - Расширенная обработка ошибок с контекстной информацией
//
// Все операции fire-and-forget: ничего не возвращают, не блокируют и не
// бросают ошибок синхронно. Результаты приходят позже через callback'и.
// Повторы не выполняются; политика восстановления принадлежит нативной
// стороне или приложению.
//
// Handle'ы создаются через менеджер (pkg/manager_media), который владеет
// реестром id -> Handle и маршрутизирует уведомления нативной стороны.
//
// # Быстрый старт
//
//	handle, err := manager.CreateHandle(media.HandleConfig{
//	    Src: "track.mp3",
//	    OnSuccess: func() {
//	        log.Println("воспроизведение завершено")
//	    },
//	    OnError: func(code media.NativeErrorCode) {
//	        log.Printf("ошибка нативной стороны: %s", code)
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	handle.Play(nil)
//	handle.SeekTo(5000)
package media
