package daemons

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zestdev/zest/mocks"
	"github.com/zestdev/zest/shared"
)

func TestScheduleDaemon(t *testing.T) {
	t.Run("should consume published jobs until stopped", func(t *testing.T) {
		jobs := make(chan map[string]any, 1)

		broker := &mocks.PubSubBroker{}
		broker.On("Subscribe", shared.ScheduleDue).Return((<-chan map[string]any)(jobs), nil)

		handled := make(chan map[string]any, 1)
		scheduleService := &mocks.ScheduleService{}
		scheduleService.On("HandleScheduleJob", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			handled <- args.Get(1).(map[string]any)
		})
		scheduleService.On("DispatchDue", mock.Anything, mock.Anything).Return(nil)

		daemon := NewScheduleDaemon(scheduleService, broker)
		require.NoError(t, daemon.Start(context.Background()))

		jobs <- map[string]any{"scheduleId": "abc"}

		select {
		case payload := <-handled:
			require.Equal(t, "abc", payload["scheduleId"])
		case <-time.After(time.Second):
			t.Fatal("job was not consumed")
		}

		stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, daemon.Stop(stopCtx))
	})
}
