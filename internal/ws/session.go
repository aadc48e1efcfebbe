// Package ws serves a live task list over a websocket. Each connection owns
// one tasksync.Component for the verified caller.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/GregMSThompson/task-tracker/internal/dto"
	"github.com/GregMSThompson/task-tracker/internal/metrics"
	"github.com/GregMSThompson/task-tracker/internal/session"
	"github.com/GregMSThompson/task-tracker/internal/tasksync"
	"github.com/GregMSThompson/task-tracker/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 30 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 4096
)

// TaskStore is what a live session needs from the task store.
type TaskStore interface {
	tasksync.Subscriber
	tasksync.Mutator
}

type viewMessage struct {
	Type string `json:"type"`
	tasksync.View
}

type Session struct {
	ID    string
	conn  *websocket.Conn
	log   *slog.Logger
	tasks *tasksync.Component

	// views holds only the latest view; older unsent views are replaced
	views   chan tasksync.View
	notices chan dto.LiveNotice
	quit    chan struct{}
}

// Serve runs a live session on conn until the client goes away. The
// component is closed before Serve returns, so no snapshot is delivered after
// that point.
func Serve(ctx context.Context, conn *websocket.Conn, id session.Identity, store TaskStore) {
	sessionID := uuid.NewString()
	log, ctx := logger.With(ctx, "session_id", sessionID)

	s := &Session{
		ID:      sessionID,
		conn:    conn,
		log:     log,
		views:   make(chan tasksync.View, 1),
		notices: make(chan dto.LiveNotice, 16),
		quit:    make(chan struct{}),
	}
	s.tasks = tasksync.New(ctx, store, store, tasksync.WithListener(s.publish))

	metrics.LiveSessions.Inc()
	defer metrics.LiveSessions.Dec()
	log.Info("live session opened")

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writePump()
	}()

	if err := s.tasks.SetIdentity(id); err != nil {
		s.notify(dto.LiveError, "Failed to load tasks")
	}

	s.readPump()

	s.tasks.Close()
	close(s.quit)
	<-writerDone
	_ = conn.Close()
	s.tasks.Wait()
	log.Info("live session closed")
}

// publish runs under the component lock, so there is a single producer.
func (s *Session) publish(v tasksync.View) {
	select {
	case s.views <- v:
	default:
		select {
		case <-s.views:
		default:
		}
		s.views <- v
	}
}

func (s *Session) notify(kind, message string) {
	select {
	case s.notices <- dto.LiveNotice{Type: kind, Message: message}:
	default:
		s.log.Warn("dropping live notice, client is not reading", "type", kind)
	}
}

func (s *Session) readPump() {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("live session read failed", "error", err)
			}
			return
		}
		s.handle(msg)
	}
}

func (s *Session) handle(msg []byte) {
	var cmd dto.LiveCommand
	if err := json.Unmarshal(msg, &cmd); err != nil {
		s.notify(dto.LiveError, "Invalid message")
		return
	}

	switch cmd.Type {
	case dto.LiveAdd:
		if s.tasks.AddTask(cmd.Title) {
			s.notify(dto.LiveCleared, "")
		}
	case dto.LiveToggle:
		task, ok := s.tasks.Task(cmd.ID)
		if !ok {
			s.log.Debug("toggle for task not in list", "task_id", cmd.ID)
			return
		}
		s.tasks.ToggleStatus(task)
	case dto.LiveDelete:
		s.tasks.DeleteTask(cmd.ID)
	case dto.LiveFilter:
		f, err := tasksync.ParseFilter(cmd.Filter)
		if err != nil {
			s.notify(dto.LiveError, err.Error())
			return
		}
		s.tasks.SetFilter(f)
	default:
		s.notify(dto.LiveError, "Unknown message type")
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		// unblocks readPump if the writer fails first
		_ = s.conn.Close()
	}()

	for {
		select {
		case <-s.quit:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case v := <-s.views:
			if err := s.write(viewMessage{Type: dto.LiveView, View: v}); err != nil {
				return
			}
		case n := <-s.notices:
			if err := s.write(n); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Session) write(v any) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(v); err != nil {
		s.log.Warn("live session write failed", "error", err)
		return err
	}
	return nil
}
