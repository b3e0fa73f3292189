package checkout

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Notification channels: who a simulated message is addressed to.
const (
	ChannelCustomer = "customer"
	ChannelCEO      = "ceo"
)

// Notification is one simulated outbound message. Nothing is ever sent
// anywhere; dispatch means logging the message after its scheduled delay.
type Notification struct {
	Channel   string
	Recipient string
	Message   string
}

// Dispatcher schedules the post-order notifications on fixed timers. Pending
// timers are discarded on Shutdown so no message fires for a flow the process
// has abandoned.
type Dispatcher struct {
	lg            *zap.Logger
	customerDelay time.Duration
	ceoDelay      time.Duration

	mu      sync.Mutex
	stopped bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher logging through lg. The delays stagger
// the customer message and the CEO alert after order completion.
func NewDispatcher(lg *zap.Logger, customerDelay, ceoDelay time.Duration) *Dispatcher {
	return &Dispatcher{
		lg:            lg,
		customerDelay: customerDelay,
		ceoDelay:      ceoDelay,
		stop:          make(chan struct{}),
	}
}

// DispatchOrder schedules both notifications for a completed order and
// returns immediately.
func (d *Dispatcher) DispatchOrder(conf Confirmation) {
	name := conf.CustomerName
	if name == "" {
		name = "Customer"
	}
	from := conf.CustomerName
	if from == "" {
		from = "a customer"
	}

	d.schedule(d.customerDelay, Notification{
		Channel:   ChannelCustomer,
		Recipient: "+91 " + conf.CustomerPhone,
		Message: fmt.Sprintf(
			"Hi %s, your SoleMate order %s is confirmed! We're preparing your premium shoe care gear for dispatch. Stay fresh!",
			name, conf.OrderRef,
		),
	})
	d.schedule(d.ceoDelay, Notification{
		Channel:   ChannelCEO,
		Recipient: "+91 99XXX XXXXX",
		Message: fmt.Sprintf(
			"CEO ALERT: New order %s received from %s (%s). Revenue goals on track! 🚀",
			conf.OrderRef, from, conf.CustomerPhone,
		),
	})
}

// schedule fires n after delay unless the dispatcher shuts down first. The
// mutex keeps wg.Add ordered before Shutdown's wg.Wait; a checkout finishing
// during shutdown must not re-arm the group mid-wait.
func (d *Dispatcher) schedule(delay time.Duration, n Notification) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()
	go func() {
		defer d.wg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-d.stop:
			return
		case <-timer.C:
			d.lg.Info("Notification sent",
				zap.String("channel", n.Channel),
				zap.String("recipient", n.Recipient),
				zap.String("message", n.Message),
			)
		}
	}()
}

// Shutdown discards every pending timer and waits for the scheduling
// goroutines to exit. Safe to call more than once.
func (d *Dispatcher) Shutdown() {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.stop)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
