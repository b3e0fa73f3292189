package checkout

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDispatchOrder_SendsBothMessages(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	d := NewDispatcher(zap.New(core), time.Millisecond, 2*time.Millisecond)

	d.DispatchOrder(Confirmation{
		OrderRef:      "SM-123456",
		CustomerName:  "Asha",
		CustomerPhone: "9876543210",
		AmountPaid:    decimal.NewFromInt(1342),
	})

	// Wait for both timers to fire.
	assert.Eventually(t, func() bool {
		return logs.FilterMessage("Notification sent").Len() == 2
	}, time.Second, 5*time.Millisecond)

	entries := logs.FilterMessage("Notification sent").All()
	byChannel := map[string]string{}
	for _, e := range entries {
		fields := e.ContextMap()
		byChannel[fields["channel"].(string)] = fields["message"].(string)
	}

	assert.Contains(t, byChannel[ChannelCustomer], "Hi Asha")
	assert.Contains(t, byChannel[ChannelCustomer], "SM-123456")
	assert.Contains(t, byChannel[ChannelCEO], "CEO ALERT")
	assert.Contains(t, byChannel[ChannelCEO], "9876543210")
	assert.Contains(t, byChannel[ChannelCEO], "Revenue goals on track! 🚀")

	d.Shutdown()
}

func TestDispatchOrder_AnonymousCustomer(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	d := NewDispatcher(zap.New(core), time.Millisecond, time.Millisecond)

	d.DispatchOrder(Confirmation{OrderRef: "SM-654321"})

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("Notification sent").Len() == 2
	}, time.Second, 5*time.Millisecond)

	var customerMsg, ceoMsg string
	for _, e := range logs.FilterMessage("Notification sent").All() {
		fields := e.ContextMap()
		switch fields["channel"] {
		case ChannelCustomer:
			customerMsg = fields["message"].(string)
		case ChannelCEO:
			ceoMsg = fields["message"].(string)
		}
	}
	assert.Contains(t, customerMsg, "Hi Customer")
	assert.Contains(t, ceoMsg, "from a customer")

	d.Shutdown()
}

func TestShutdown_DiscardsPendingTimers(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	d := NewDispatcher(zap.New(core), time.Hour, time.Hour)

	d.DispatchOrder(Confirmation{OrderRef: "SM-111111"})
	d.Shutdown()

	assert.Zero(t, logs.FilterMessage("Notification sent").Len())
	// Shutdown twice is safe.
	d.Shutdown()
}

func TestDispatchOrder_AfterShutdownIsNoOp(t *testing.T) {
	// A checkout whose client disconnected can complete while the process is
	// shutting down; its dispatch must not re-arm the dispatcher.
	core, logs := observer.New(zap.InfoLevel)
	d := NewDispatcher(zap.New(core), time.Millisecond, time.Millisecond)

	d.Shutdown()
	d.DispatchOrder(Confirmation{OrderRef: "SM-222222"})

	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, logs.FilterMessage("Notification sent").Len())
}

func TestDispatchOrder_ConcurrentWithShutdown(t *testing.T) {
	core, _ := observer.New(zap.InfoLevel)
	d := NewDispatcher(zap.New(core), time.Hour, time.Hour)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 100 {
			d.DispatchOrder(Confirmation{OrderRef: "SM-333333"})
		}
	}()

	d.Shutdown()
	<-done
	// Waits cleanly: every goroutine admitted before the stop flag has
	// already been counted, everything after is dropped.
	d.Shutdown()
}
