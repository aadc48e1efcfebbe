package store

import (
	"context"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/task-tracker/internal/models"
	"github.com/GregMSThompson/task-tracker/internal/tasksync"
	"github.com/GregMSThompson/task-tracker/pkg/logger"
)

// taskSubscription adapts a Firestore query snapshot listener to a channel of
// full task lists.
type taskSubscription struct {
	cancel context.CancelFunc
	out    chan []models.Task
	done   chan struct{}
	once   sync.Once
}

// Subscribe starts listening to uid's tasks, newest first. The first value on
// the channel is the current result set; every later change delivers the
// full set again.
func (s *taskStore) Subscribe(ctx context.Context, uid string) (tasksync.Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	sub := &taskSubscription{
		cancel: cancel,
		out:    make(chan []models.Task),
		done:   make(chan struct{}),
	}
	go sub.run(ctx, s.userQuery(uid).Snapshots(ctx), uid)
	return sub, nil
}

func (s *taskSubscription) run(ctx context.Context, iter *firestore.QuerySnapshotIterator, uid string) {
	log := logger.FromContext(ctx).With("uid", uid)
	defer close(s.done)
	defer close(s.out)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if ctx.Err() == nil && status.Code(err) != codes.Canceled {
				log.Error("task listener failed", "error", err)
			}
			return
		}
		tasks, err := decodeTasks(snap.Documents)
		if err != nil {
			log.Error("failed to decode task snapshot", "error", err)
			continue
		}
		select {
		case s.out <- tasks:
		case <-ctx.Done():
			return
		}
	}
}

func (s *taskSubscription) Snapshots() <-chan []models.Task {
	return s.out
}

// Stop cancels the listener and waits for its goroutine to exit.
func (s *taskSubscription) Stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}
