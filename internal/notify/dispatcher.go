// Package notify: побочные эффекты после ответа клиенту: синхронизация
// с чат-сервисом, письма с кодами, чистка объектов в хранилище.
// Ошибки только логируются и никогда не влияют на основной запрос.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Dispatcher struct {
	timeout time.Duration
	log     zerolog.Logger
	wg      sync.WaitGroup
}

func NewDispatcher(timeout time.Duration, log zerolog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{timeout: timeout, log: log}
}

// Go запускает задачу в отдельной горутине со своим таймаутом:
// контекст запроса к этому моменту уже может быть отменён.
func (d *Dispatcher) Go(name string, fn func(ctx context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				d.log.Error().Str("task", name).Interface("panic", rec).Msg("background task panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			d.log.Warn().Err(err).Str("task", name).Dur("took", time.Since(start)).Msg("background task failed")
			return
		}
		d.log.Debug().Str("task", name).Dur("took", time.Since(start)).Msg("background task done")
	}()
}

// Wait дожидается фоновых задач (при остановке сервера).
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
