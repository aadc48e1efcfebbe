// Package tasksync keeps a live, user-scoped, newest-first task list in
// memory, derives filtered views from it and forwards user intents to the
// store as fire-and-forget mutations.
//
// The store is the only source of truth for list membership: every snapshot
// delivered by the subscription replaces the local list wholesale, and
// mutations never touch the list directly.
package tasksync

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/GregMSThompson/task-tracker/internal/metrics"
	"github.com/GregMSThompson/task-tracker/internal/models"
	"github.com/GregMSThompson/task-tracker/internal/session"
	"github.com/GregMSThompson/task-tracker/pkg/logger"
)

var ErrClosed = errors.New("tasksync: component closed")

// Subscription delivers full result sets for one user-scoped query. Stop must
// release the underlying listener; Snapshots may be closed afterwards.
type Subscription interface {
	Snapshots() <-chan []models.Task
	Stop()
}

// Subscriber opens the query userId == userID ordered by createdAt descending.
type Subscriber interface {
	Subscribe(ctx context.Context, userID string) (Subscription, error)
}

type Mutator interface {
	Create(ctx context.Context, task *models.Task) (string, error)
	UpdateStatus(ctx context.Context, uid, taskID string, status models.TaskStatus) error
	Delete(ctx context.Context, uid, taskID string) error
}

// Listener receives the current view after every applied snapshot, filter
// change or identity change. It runs with the component locked and must not
// call back into the component.
type Listener func(View)

type Option func(*Component)

func WithListener(l Listener) Option {
	return func(c *Component) { c.listener = l }
}

type Component struct {
	subs Subscriber
	muts Mutator
	ctx  context.Context
	log  *slog.Logger

	listener Listener

	// lifecycle serializes SetIdentity and Close
	lifecycle sync.Mutex

	mu       sync.Mutex
	identity session.Identity
	tasks    []models.Task
	filter   Filter
	gen      uint64
	sub      Subscription
	stop     chan struct{}
	pumpDone chan struct{}
	closed   bool

	inflight sync.WaitGroup
}

// New returns a component with no identity and no subscription. ctx is used
// for subscriptions and mutations and should carry the request logger.
func New(ctx context.Context, subs Subscriber, muts Mutator, opts ...Option) *Component {
	c := &Component{
		subs:   subs,
		muts:   muts,
		ctx:    ctx,
		log:    logger.FromContext(ctx),
		filter: FilterAll,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetIdentity switches the component to id. The previous subscription, if
// any, is fully torn down before this returns; a signed-in identity gets a
// fresh subscription and the anonymous identity gets none.
func (c *Component) SetIdentity(id session.Identity) error {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if id == c.identity && (c.sub != nil || !id.SignedIn()) {
		c.mu.Unlock()
		return nil
	}
	c.gen++
	gen := c.gen
	c.identity = id
	c.tasks = nil
	old, stop, done := c.detachLocked()
	c.notifyLocked()
	c.mu.Unlock()

	release(old, stop, done)

	if !id.SignedIn() {
		return nil
	}

	sub, err := c.subs.Subscribe(c.ctx, id.UID)
	if err != nil {
		c.log.Error("failed to subscribe to tasks", "uid", id.UID, "error", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.gen != gen {
		sub.Stop()
		return nil
	}
	c.sub = sub
	c.stop = make(chan struct{})
	c.pumpDone = make(chan struct{})
	go c.pump(sub, gen, c.stop, c.pumpDone)

	c.log.Debug("task subscription opened", "uid", id.UID)
	return nil
}

// Close tears down the subscription. Once it returns no snapshot is applied
// and the listener is never called again. In-flight mutations keep running;
// use Wait to block on them.
func (c *Component) Close() {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.gen++
	old, stop, done := c.detachLocked()
	c.mu.Unlock()

	release(old, stop, done)
}

// Wait blocks until every submitted mutation has finished.
func (c *Component) Wait() {
	c.inflight.Wait()
}

func (c *Component) detachLocked() (Subscription, chan struct{}, chan struct{}) {
	sub, stop, done := c.sub, c.stop, c.pumpDone
	c.sub, c.stop, c.pumpDone = nil, nil, nil
	return sub, stop, done
}

func release(sub Subscription, stop, done chan struct{}) {
	if sub == nil {
		return
	}
	close(stop)
	sub.Stop()
	<-done
}

func (c *Component) pump(sub Subscription, gen uint64, stop, done chan struct{}) {
	defer close(done)
	snapshots := sub.Snapshots()
	for {
		select {
		case <-stop:
			return
		case tasks, ok := <-snapshots:
			if !ok {
				return
			}
			c.apply(gen, tasks)
		}
	}
}

func (c *Component) apply(gen uint64, tasks []models.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.gen {
		metrics.SnapshotsDropped.Inc()
		return
	}
	c.tasks = tasks
	metrics.SnapshotsApplied.Inc()
	c.notifyLocked()
}

func (c *Component) notifyLocked() {
	if c.listener == nil || c.closed {
		return
	}
	c.listener(BuildView(c.tasks, c.filter))
}

// AddTask submits a pending task for the current identity. Titles that are
// empty after trimming are ignored. The return value reports whether a
// mutation was submitted, which is when the input should be cleared.
func (c *Component) AddTask(title string) bool {
	if strings.TrimSpace(title) == "" {
		return false
	}
	id, ok := c.activeIdentity()
	if !ok {
		return false
	}

	task := &models.Task{
		Title:  title,
		Status: models.TaskPending,
		UserID: id.UID,
	}
	c.submit("create", func(ctx context.Context) error {
		_, err := c.muts.Create(ctx, task)
		return err
	})
	return true
}

// ToggleStatus flips task between pending and completed.
func (c *Component) ToggleStatus(task models.Task) {
	id, ok := c.activeIdentity()
	if !ok {
		return
	}
	next := task.Status.Toggle()
	c.submit("toggle", func(ctx context.Context) error {
		return c.muts.UpdateStatus(ctx, id.UID, task.ID, next)
	})
}

func (c *Component) DeleteTask(taskID string) {
	id, ok := c.activeIdentity()
	if !ok {
		return
	}
	c.submit("delete", func(ctx context.Context) error {
		return c.muts.Delete(ctx, id.UID, taskID)
	})
}

// SetFilter changes the active filter. It never touches the store.
func (c *Component) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
	c.notifyLocked()
}

func (c *Component) activeIdentity() (session.Identity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.identity.SignedIn() {
		return session.Anonymous, false
	}
	return c.identity, true
}

func (c *Component) submit(op string, fn func(ctx context.Context) error) {
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		if err := fn(c.ctx); err != nil {
			c.log.Error("task mutation failed", "op", op, "error", err)
			metrics.MutationFailed(op)
		}
	}()
}

// Task looks up a task in the current list.
func (c *Component) Task(taskID string) (models.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tasks {
		if t.ID == taskID {
			return t, true
		}
	}
	return models.Task{}, false
}

func (c *Component) Tasks() []models.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FilterTasks(c.tasks, FilterAll)
}

func (c *Component) FilteredTasks() []models.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FilterTasks(c.tasks, c.filter)
}

func (c *Component) Counts() Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CountTasks(c.tasks)
}

func (c *Component) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return BuildView(c.tasks, c.filter)
}

func (c *Component) Identity() session.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}
