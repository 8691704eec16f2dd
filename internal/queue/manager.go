package queue

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/urban-bracket/internal/admission"
	"github.com/mauv0809/urban-bracket/internal/apperr"
	"github.com/mauv0809/urban-bracket/internal/arena"
	"github.com/mauv0809/urban-bracket/internal/metrics"
	"github.com/mauv0809/urban-bracket/internal/pubsub"
	"golang.org/x/sync/errgroup"
)

var _ QueueService = (*Manager)(nil)

// New creates a new queue Manager.
func New(store arena.ArenaStore, admission *admission.Controller, metricsSvc metrics.Metrics, pubsubClient pubsub.PubSubClient, atomicJoin bool) *Manager {
	return &Manager{
		store:      store,
		admission:  admission,
		metrics:    metricsSvc,
		pubsub:     pubsubClient,
		atomicJoin: atomicJoin,
	}
}

// Join runs admission, loads the user/player/active-entry state in
// parallel, then proceeds serially: user check, player bootstrap,
// already-active check, entry insert. No decision is made until every
// read has completed.
func (m *Manager) Join(ctx context.Context, userID, bracketID string) (*JoinResult, error) {
	startTime := time.Now()

	b, err := m.admission.Check(userID, bracketID)
	if err != nil {
		m.metrics.IncJoinRejections()
		return nil, err
	}

	var (
		user   *arena.User
		player *arena.Player
		active []arena.QueueEntry
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = m.store.GetUser(userID)
		return err
	})
	g.Go(func() error {
		var err error
		player, err = m.store.FindPlayer(userID, bracketID)
		return err
	})
	g.Go(func() error {
		var err error
		active, err = m.store.ActiveEntries(userID, bracketID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperr.Internal("load queue state", err)
	}

	// Admission already checked the user, but Join must hold on its
	// own when invoked without it.
	if user == nil {
		m.metrics.IncJoinRejections()
		return nil, apperr.NotFound("user does not exist")
	}

	// The player bootstrap runs before the already-active check on
	// purpose: a join that ends in Conflict can still have created the
	// player record. Do not reorder without a product decision.
	if player == nil {
		player, err = m.store.CreatePlayer(userID, bracketID, b.Specs.StartRating)
		if err != nil {
			return nil, apperr.Internal("create player", err)
		}
	}

	if len(active) > 0 {
		m.metrics.IncJoinRejections()
		return nil, apperr.Conflict("already in queue")
	}

	var entry *arena.QueueEntry
	if m.atomicJoin {
		var inserted bool
		entry, inserted, err = m.store.CreateEntryUnlessActive(userID, player.ID, bracketID)
		if err != nil {
			return nil, apperr.Internal("create queue entry", err)
		}
		if !inserted {
			// A concurrent join won the race between our read and this
			// write.
			m.metrics.IncJoinRejections()
			return nil, apperr.Conflict("already in queue")
		}
	} else {
		entry, err = m.store.CreateEntry(userID, player.ID, bracketID)
		if err != nil {
			return nil, apperr.Internal("create queue entry", err)
		}
	}

	m.metrics.IncQueueJoins()
	m.metrics.ObserveJoinDuration(time.Since(startTime).Seconds())
	log.Info("User joined queue", "userID", userID, "bracketID", bracketID, "entryID", entry.ID)

	m.publish(pubsub.EventQueueJoined, pubsub.QueueEvent{
		UserID:    userID,
		UserName:  user.Name,
		BracketID: bracketID,
		EntryID:   entry.ID,
		PlayerID:  player.ID,
	})

	return &JoinResult{
		EntryID:   entry.ID,
		PlayerID:  player.ID,
		BracketID: bracketID,
	}, nil
}

// Leave retires every active entry for (user, bracket). Normally that
// is exactly one, but stale duplicates from a broken invariant are
// cleared in the same pass.
func (m *Manager) Leave(ctx context.Context, userID, bracketID string) (*LeaveResult, error) {
	var (
		user   *arena.User
		active []arena.QueueEntry
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = m.store.GetUser(userID)
		return err
	})
	g.Go(func() error {
		var err error
		active, err = m.store.ActiveEntries(userID, bracketID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperr.Internal("load queue state", err)
	}

	if user == nil {
		return nil, apperr.NotFound("user does not exist")
	}
	if len(active) == 0 {
		return nil, apperr.NotFound("not in queue")
	}

	count, err := m.store.DeactivateEntries(userID, bracketID)
	if err != nil {
		return nil, apperr.Internal("deactivate queue entries", err)
	}

	m.metrics.IncQueueLeaves()
	m.metrics.AddEntriesDeactivated(float64(count))
	if count > 1 {
		log.Warn("Cleared duplicate active queue entries", "userID", userID, "bracketID", bracketID, "count", count)
	} else {
		log.Info("User left queue", "userID", userID, "bracketID", bracketID)
	}

	m.publish(pubsub.EventQueueLeft, pubsub.QueueEvent{
		UserID:      userID,
		UserName:    user.Name,
		BracketID:   bracketID,
		Deactivated: count,
	})

	return &LeaveResult{Deactivated: count}, nil
}

// publish sends the event best-effort: the membership change is
// already durable, so a publish failure is logged and swallowed.
func (m *Manager) publish(topic pubsub.EventType, event pubsub.QueueEvent) {
	if err := m.pubsub.SendMessage(topic, event); err != nil {
		log.Error("Failed to publish queue event", "topic", topic, "error", err)
	}
}
