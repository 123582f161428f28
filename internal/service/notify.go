package service

import (
	"context"
	"sync"
	"time"

	"github.com/fsdevblog/paydesk/internal/notification"
	"github.com/sirupsen/logrus"
)

const defaultNotifyTimeout = 5 * time.Second

// Dispatcher отправляет уведомления в фоне. Ошибки доставки только логируются и не влияют
// на результат операции.
type Dispatcher struct {
	sink    Notifier
	l       *logrus.Entry
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(sink Notifier, l *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		sink:    sink,
		l:       l.WithField("component", "dispatcher"),
		timeout: defaultNotifyTimeout,
	}
}

// Dispatch безопасен для nil получателя.
func (d *Dispatcher) Dispatch(event notification.Event) {
	if d == nil || d.sink == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.sink.Notify(ctx, event); err != nil {
			d.l.WithError(err).WithField("event", event.Type).Warn("notification delivery failed")
		}
	}()
}

// Wait ждет завершения отправленных уведомлений.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}
