package client

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pocketfold/backend/internal/ledger"
	"github.com/pocketfold/backend/internal/models"
	"github.com/pocketfold/backend/internal/notify"
	"github.com/pocketfold/backend/internal/types"
)

// DefaultDebounce is the window change signals are collapsed in before
// a single authoritative refetch.
const DefaultDebounce = 300 * time.Millisecond

// Fetcher loads authoritative state. Implementations may be in-process
// or remote.
type Fetcher interface {
	FetchSummary(ctx context.Context, ledgerID uuid.UUID) (ledger.LedgerSummary, error)
	FetchPeriodTransactions(ctx context.Context, ledgerID uuid.UUID, month types.Month) ([]models.Transaction, error)
}

// ServiceFetcher adapts the in-process ledger service to the Fetcher
// interface.
type ServiceFetcher struct {
	Service *ledger.Service
}

func (f ServiceFetcher) FetchSummary(_ context.Context, ledgerID uuid.UUID) (ledger.LedgerSummary, error) {
	return f.Service.LedgerSummary(ledgerID)
}

func (f ServiceFetcher) FetchPeriodTransactions(_ context.Context, ledgerID uuid.UUID, month types.Month) ([]models.Transaction, error) {
	return f.Service.PeriodTransactions(ledgerID, month)
}

// ReconcilerOptions tune a Reconciler.
type ReconcilerOptions struct {
	// Debounce window, DefaultDebounce when zero.
	Debounce time.Duration

	// Month is the active budgeting period for the transaction list.
	Month types.Month

	// OnTransactions is invoked with the refetched period transactions.
	OnTransactions func([]models.Transaction)

	// OnWarning and OnWarningCleared surface channel and refetch
	// problems to the UI. One warning per disconnect, not per dropped
	// message; cleared on reconnect.
	OnWarning        func(string)
	OnWarningCleared func()
}

// Reconciler subscribes to change notifications for the active ledger's
// category collection and the global transaction collection, collapses
// bursts into a single debounced refetch of the authoritative
// aggregates, and tracks the notification channel's own connectivity.
//
// Signals are funneled through a bounded queue consumed by one worker;
// a signal dropped because the queue is full is harmless since any
// queued signal already means "refetch everything".
type Reconciler struct {
	fetcher   Fetcher
	projector *Projector
	ledgerID  uuid.UUID
	log       zerolog.Logger
	opts      ReconcilerOptions

	events chan notify.Event
	subs   []*notify.Subscription

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewReconciler subscribes to the hub and starts the worker loop. Close
// releases all subscriptions and pending timers.
func NewReconciler(hub *notify.Hub, fetcher Fetcher, projector *Projector, ledgerID uuid.UUID, log zerolog.Logger, opts ReconcilerOptions) *Reconciler {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	r := &Reconciler{
		fetcher:   fetcher,
		projector: projector,
		ledgerID:  ledgerID,
		log:       log,
		opts:      opts,
		events:    make(chan notify.Event, 1),
		done:      make(chan struct{}),
	}

	r.subs = []*notify.Subscription{
		hub.Subscribe(notify.CollectionCategories, ledgerID),
		hub.Subscribe(notify.CollectionTransactions, uuid.Nil),
	}

	for _, sub := range r.subs {
		r.wg.Add(1)
		go r.pump(sub)
	}

	r.wg.Add(1)
	go r.run()

	return r
}

// pump forwards a subscription into the bounded queue, collapsing
// duplicate signals by dropping when the queue is full. Connectivity
// events must not be collapsed away, so they wait for the worker.
func (r *Reconciler) pump(sub *notify.Subscription) {
	defer r.wg.Done()

	for event := range sub.C {
		if event.Connectivity() {
			select {
			case r.events <- event:
			case <-r.done:
				return
			}
			continue
		}

		select {
		case r.events <- event:
		default:
		}
	}
}

// run is the single worker consuming the signal queue.
func (r *Reconciler) run() {
	defer r.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time
	connected := true

	for {
		select {
		case <-r.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event := <-r.events:
			switch event.Op {
			case notify.OpDisconnected:
				if connected {
					connected = false
					r.warn("change notifications disconnected, updates may be missed")
				}

			case notify.OpConnected:
				if !connected {
					connected = true
					r.clearWarning()

					// Events during the outage are unobservable, so do
					// not wait for the next notification.
					if timer != nil {
						timer.Stop()
						timerC = nil
					}
					r.refetch()
				}

			default:
				// (Re)schedule the debounced refetch, collapsing the burst.
				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(r.opts.Debounce)
				timerC = timer.C
			}

		case <-timerC:
			timerC = nil
			r.refetch()
		}
	}
}

// refetch loads the authoritative category summary and period
// transaction list. A failure leaves the state at its last known value,
// optimistic or stale, and surfaces a single warning.
//
// No cancellation token propagates into the fetch; with a remote
// fetcher a slow response finishing after a newer one can overwrite
// fresher state. Known ordering race, accepted for now.
func (r *Reconciler) refetch() {
	ctx := context.Background()

	summary, err := r.fetcher.FetchSummary(ctx, r.ledgerID)
	if err != nil {
		r.log.Warn().Err(err).Msg("refetch failed")
		r.warn("could not refresh data, please reload")
		return
	}

	transactions, err := r.fetcher.FetchPeriodTransactions(ctx, r.ledgerID, r.opts.Month)
	if err != nil {
		r.log.Warn().Err(err).Msg("refetch failed")
		r.warn("could not refresh data, please reload")
		return
	}

	r.projector.Sync(summary)
	if r.opts.OnTransactions != nil {
		r.opts.OnTransactions(transactions)
	}
}

func (r *Reconciler) warn(message string) {
	if r.opts.OnWarning != nil {
		r.opts.OnWarning(message)
	}
}

func (r *Reconciler) clearWarning() {
	if r.opts.OnWarningCleared != nil {
		r.opts.OnWarningCleared()
	}
}

// Close releases all subscriptions, stops the pending debounce timer
// and waits for the worker to exit. It is safe to call more than once.
func (r *Reconciler) Close() {
	r.closeOnce.Do(func() {
		for _, sub := range r.subs {
			sub.Close()
		}
		close(r.done)
		r.wg.Wait()
	})
}
