// Package livequery turns Mongo change streams into snapshot subscriptions:
// each time anything in a watched collection changes, the subscription
// re-runs its query and pushes the complete result set. Consumers replace
// their local state wholesale with every snapshot; there is no incremental
// patching. Ordering comes from the server-side sort, never a local re-sort.
//
// Every subscription holds one open change stream on the server. Callers
// must Cancel when the consuming view goes away or the stream leaks.
package livequery

import (
	"context"
	"time"

	"github.com/dalemusser/sevahub/internal/app/system/metrics"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Watcher creates subscriptions against one database.
type Watcher struct {
	db  *mongo.Database
	log *zap.Logger
}

// NewWatcher returns a Watcher over db.
func NewWatcher(db *mongo.Database, logger *zap.Logger) *Watcher {
	return &Watcher{db: db, log: logger}
}

// Query describes what a subscription watches: a collection, an optional
// filter, and an optional server-side sort.
type Query struct {
	Collection string
	Filter     bson.M // nil means all documents
	OrderBy    bson.D // nil means unordered
}

// Subscription is one live query. Snapshots() yields the full result set
// after every change; the channel closes when the stream ends (Cancel, a
// stream error, or context cancellation).
type Subscription struct {
	id     string
	snaps  chan []bson.Raw
	cancel context.CancelFunc
}

// ID identifies the subscription in logs.
func (s *Subscription) ID() string { return s.id }

// Snapshots returns the channel of full result-set snapshots.
func (s *Subscription) Snapshots() <-chan []bson.Raw { return s.snaps }

// Cancel closes the server-side stream and the Snapshots channel. Safe to
// call more than once.
func (s *Subscription) Cancel() { s.cancel() }

// Subscribe opens a change stream on q.Collection and returns a
// Subscription whose first snapshot (the current result set) is delivered
// immediately, before any change arrives.
func (w *Watcher) Subscribe(ctx context.Context, q Query) (*Subscription, error) {
	coll := w.db.Collection(q.Collection)

	streamCtx, cancel := context.WithCancel(ctx)

	stream, err := coll.Watch(streamCtx, mongo.Pipeline{},
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		cancel()
		return nil, err
	}

	sub := &Subscription{
		id:     uuid.NewString(),
		snaps:  make(chan []bson.Raw, 1),
		cancel: cancel,
	}

	metrics.LiveSubscriptions.Inc()
	go w.run(streamCtx, stream, coll, q, sub)

	return sub, nil
}

// run pushes the initial snapshot, then one snapshot per change event.
// Change events only signal "something changed"; the snapshot itself always
// comes from a fresh query so the server applies filter and order.
func (w *Watcher) run(ctx context.Context, stream *mongo.ChangeStream, coll *mongo.Collection, q Query, sub *Subscription) {
	defer func() {
		_ = stream.Close(context.Background())
		close(sub.snaps)
		metrics.LiveSubscriptions.Dec()
	}()

	if !w.push(ctx, coll, q, sub) {
		return
	}

	for stream.Next(ctx) {
		if !w.push(ctx, coll, q, sub) {
			return
		}
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		// Background subscription errors are logged, not surfaced; the
		// consuming view goes stale until the client reconnects.
		w.log.Error("live query stream failed",
			zap.String("subscription", sub.id),
			zap.String("collection", q.Collection),
			zap.Error(err))
	}
}

// push queries the full result set and delivers it, dropping the previous
// undelivered snapshot if the consumer is behind. Only the latest state
// matters.
func (w *Watcher) push(ctx context.Context, coll *mongo.Collection, q Query, sub *Subscription) bool {
	qctx, qcancel := context.WithTimeout(ctx, 15*time.Second)
	defer qcancel()

	filter := q.Filter
	if filter == nil {
		filter = bson.M{}
	}
	opts := options.Find()
	if q.OrderBy != nil {
		opts.SetSort(q.OrderBy)
	}

	cur, err := coll.Find(qctx, filter, opts)
	if err != nil {
		w.log.Error("live query refresh failed",
			zap.String("subscription", sub.id),
			zap.String("collection", q.Collection),
			zap.Error(err))
		return false
	}
	var docs []bson.Raw
	if err := cur.All(qctx, &docs); err != nil {
		w.log.Error("live query decode failed",
			zap.String("subscription", sub.id),
			zap.String("collection", q.Collection),
			zap.Error(err))
		return false
	}

	// Drain a stale snapshot so the send below can't block forever on a
	// slow consumer.
	select {
	case <-sub.snaps:
	default:
	}

	select {
	case sub.snaps <- docs:
		return true
	case <-ctx.Done():
		return false
	}
}
