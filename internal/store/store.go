// Package store holds the client-side mirror of the product catalog: an
// ordered collection of products plus the loading and error flags the UI
// renders from.
//
// Every state transition is routed through a single goroutine (Run), so
// callers on any goroutine observe consistent snapshots and mutations never
// race. Each request carries a per-kind sequence number; a settlement that
// arrives after a newer request of the same kind was issued is discarded,
// which keeps a slow fetch from overwriting later state.
package store

import (
	"context"
	"log/slog"

	"github.com/mlevkov/prodsync/internal/product"
)

// Remote is the surface of the remote product service the store needs.
// The REST client in internal/remote implements it; tests supply fakes.
type Remote interface {
	// FetchAll returns the full catalog in service order.
	FetchAll(ctx context.Context) ([]product.Product, error)

	// Create persists a candidate and returns the record as stored,
	// possibly normalized by the service.
	Create(ctx context.Context, p product.Product) (*product.Product, error)

	// Update replaces the record identified by p.SKU and returns the
	// stored version.
	Update(ctx context.Context, p product.Product) (*product.Product, error)

	// Delete removes the record identified by sku.
	Delete(ctx context.Context, sku string) error
}

// Snapshot is a point-in-time copy of the store state.
type Snapshot struct {
	Products []product.Product
	Loading  bool
	Err      string
}

type opKind int

const (
	opFetch opKind = iota
	opCreate
	opUpdate
	opDelete
)

// Store mirrors the remote catalog in memory.
//
// Run must be started before any operation is invoked. The four operations
// block until their settlement has been applied (or discarded as stale);
// failures are never returned to the caller, they surface as Snapshot.Err.
type Store struct {
	remote Remote
	logger *slog.Logger

	cmds    chan func()
	stopped chan struct{}
	changes chan struct{}

	// Owned by the Run goroutine.
	products []product.Product
	inflight int
	errMsg   string
	issued   [4]uint64
}

// New creates a Store backed by the given remote.
func New(remote Remote, logger *slog.Logger) *Store {
	return &Store{
		remote:  remote,
		logger:  logger.With("component", "store"),
		cmds:    make(chan func()),
		stopped: make(chan struct{}),
		changes: make(chan struct{}, 1),
	}
}

// Run executes state transitions until ctx is cancelled. It owns all store
// state; operations and Snapshot submit closures to it and wait.
func (s *Store) Run(ctx context.Context) {
	defer close(s.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-s.cmds:
			fn()
		}
	}
}

// Changes signals after every applied transition. The channel is coalesced:
// a reader that is behind sees a single pending signal, then reads Snapshot
// for the current state.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

// Snapshot returns a copy of the current state. The product slice is
// detached from store memory and safe to retain.
func (s *Store) Snapshot() Snapshot {
	var snap Snapshot
	s.do(func() {
		snap = Snapshot{
			Products: append([]product.Product(nil), s.products...),
			Loading:  s.inflight > 0,
			Err:      s.errMsg,
		}
	})
	return snap
}

// FetchAll replaces the collection with the service's full catalog. On
// success the error flag is cleared; on failure the collection is left
// untouched and the error flag carries the failure message. Issuing a fetch
// also clears any previous error.
func (s *Store) FetchAll(ctx context.Context) {
	seq := s.begin(opFetch, true)
	list, err := s.remote.FetchAll(ctx)
	s.settle(opFetch, seq, err, func() {
		s.products = append([]product.Product(nil), list...)
		s.errMsg = ""
	})
}

// Create sends candidate to the service and appends the returned record.
func (s *Store) Create(ctx context.Context, candidate product.Product) {
	seq := s.begin(opCreate, false)
	created, err := s.remote.Create(ctx, candidate)
	s.settle(opCreate, seq, err, func() {
		s.products = append(s.products, *created)
	})
}

// Update sends record to the service and replaces the matching element in
// place, preserving its position. A success with no matching SKU leaves the
// collection unchanged.
func (s *Store) Update(ctx context.Context, record product.Product) {
	seq := s.begin(opUpdate, false)
	updated, err := s.remote.Update(ctx, record)
	s.settle(opUpdate, seq, err, func() {
		for i := range s.products {
			if s.products[i].SKU == updated.SKU {
				s.products[i] = *updated
				return
			}
		}
		s.logger.Debug("update settled with no matching sku", "sku", updated.SKU)
	})
}

// Delete removes the element with the given SKU. A success for an absent
// SKU leaves the collection unchanged.
func (s *Store) Delete(ctx context.Context, sku string) {
	seq := s.begin(opDelete, false)
	err := s.remote.Delete(ctx, sku)
	s.settle(opDelete, seq, err, func() {
		for i := range s.products {
			if s.products[i].SKU == sku {
				s.products = append(s.products[:i], s.products[i+1:]...)
				return
			}
		}
	})
}

// begin records the request as issued and raises the loading flag. It
// returns the sequence number the settlement must present.
func (s *Store) begin(kind opKind, clearErr bool) uint64 {
	var seq uint64
	s.do(func() {
		s.issued[kind]++
		seq = s.issued[kind]
		s.inflight++
		if clearErr {
			s.errMsg = ""
		}
		s.notify()
	})
	return seq
}

// settle lowers the loading flag and applies the outcome. A settlement
// whose sequence number precedes the latest issued request of the same kind
// is stale: it neither mutates the collection nor touches the error flag.
func (s *Store) settle(kind opKind, seq uint64, err error, apply func()) {
	s.do(func() {
		s.inflight--
		switch {
		case seq < s.issued[kind]:
			s.logger.Debug("discarding stale settlement", "kind", int(kind), "seq", seq, "latest", s.issued[kind])
		case err != nil:
			s.errMsg = err.Error()
		default:
			apply()
		}
		s.notify()
	})
}

// do runs fn on the Run goroutine and waits for it. It returns without
// running fn if the store has stopped.
func (s *Store) do(fn func()) {
	done := make(chan struct{})
	select {
	case s.cmds <- func() { fn(); close(done) }:
		<-done
	case <-s.stopped:
	}
}

func (s *Store) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
