// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package daemons holds the long-running background processes. Each daemon
// is an explicitly constructed service with a Start/Stop lifecycle owned by
// the process entry point - no ambient global state.
package daemons

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/zestdev/zest/monitoring"
	"github.com/zestdev/zest/shared"
)

// ScheduleDaemon ticks over the enabled schedules, publishes due jobs to the
// queue and consumes them again. Dispatch and consumption run on the same
// broker channel, so multiple instances can split the consumer work while
// dispatch stays idempotent via the schedule's lastRunAt.
type ScheduleDaemon struct {
	scheduleService shared.ScheduleService
	broker          shared.PubSubBroker
	tickInterval    time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduleDaemon(scheduleService shared.ScheduleService, broker shared.PubSubBroker) *ScheduleDaemon {
	return &ScheduleDaemon{
		scheduleService: scheduleService,
		broker:          broker,
		tickInterval:    time.Minute,
	}
}

func (d *ScheduleDaemon) Start(ctx context.Context) error {
	jobs, err := d.broker.Subscribe(shared.ScheduleDue)
	if err != nil {
		return errors.Wrap(err, "could not subscribe to schedule queue")
	}

	runCtx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	d.wg.Add(2)
	go d.dispatchLoop(runCtx)
	go d.consumeLoop(runCtx, jobs)

	slog.Info("schedule daemon started", "tickInterval", d.tickInterval)
	return nil
}

func (d *ScheduleDaemon) Stop(ctx context.Context) error {
	if d.cancel != nil {
		d.cancel()
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("schedule daemon stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *ScheduleDaemon) dispatchLoop(ctx context.Context) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := d.scheduleService.DispatchDue(ctx, now); err != nil {
				monitoring.Alert("schedule dispatch tick failed", err)
			}
		}
	}
}

func (d *ScheduleDaemon) consumeLoop(ctx context.Context, jobs <-chan map[string]any) {
	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-jobs:
			if !ok {
				return
			}
			if err := d.scheduleService.HandleScheduleJob(ctx, payload); err != nil {
				// the queue's redelivery policy owns the retry
				slog.Error("schedule job failed", "payload", payload, "err", err)
			}
		}
	}
}
