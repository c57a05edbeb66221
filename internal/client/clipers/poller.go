package clipers

import (
	"context"
	"log/slog"
	"time"

	"github.com/clipers/clipers-cli/internal/models"
)

// PollStatus запускает периодический опрос статуса обработки клипера.
// Опрос продолжается только пока статус нетерминальный и сам
// останавливается, как только наблюдается DONE или FAILED.
// Каждое обновление передается в onUpdate (может быть nil).
//
// Возвращаемая функция stop — явный токен отмены: владелец обязан
// вызвать ее при завершении наблюдения, иначе таймер продолжит
// опрашивать сервер. Повторный вызов stop безопасен.
func (s *Store) PollStatus(
	ctx context.Context,
	cliperID string,
	interval time.Duration,
	logger *slog.Logger,
	onUpdate func(models.Cliper),
) (stop func()) {
	pollCtx, cancel := context.WithCancel(ctx)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
				cliper, err := s.Status(pollCtx, cliperID)
				if err != nil {
					// Ошибка одного опроса не останавливает таймер:
					// следующий тик попробует снова
					logger.Warn("cliper status poll failed",
						"cliper_id", cliperID,
						"error", err)
					continue
				}

				if onUpdate != nil {
					onUpdate(*cliper)
				}

				if cliper.Status.Terminal() {
					logger.Debug("cliper processing finished",
						"cliper_id", cliperID,
						"status", cliper.Status)
					cancel()
					return
				}
			}
		}
	}()

	return cancel
}
