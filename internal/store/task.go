package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/task-tracker/internal/errs"
	"github.com/GregMSThompson/task-tracker/internal/models"
)

type taskStore struct {
	client *firestore.Client
}

func NewTaskStore(client *firestore.Client) *taskStore {
	return &taskStore{client: client}
}

func (s *taskStore) collection() *firestore.CollectionRef {
	return s.client.Collection("tasks")
}

// userQuery is the only query shape used for task lists: the user's tasks,
// newest first. It needs the (userId ASC, createdAt DESC) composite index.
func (s *taskStore) userQuery(uid string) firestore.Query {
	return s.collection().Where("userId", "==", uid).OrderBy("createdAt", firestore.Desc)
}

// Create adds the task with a store-assigned ID and a server timestamp.
func (s *taskStore) Create(ctx context.Context, task *models.Task) (string, error) {
	ref, _, err := s.collection().Add(ctx, task)
	if err != nil {
		return "", errs.NewDatabaseError("create", "failed to create task", err)
	}
	task.ID = ref.ID
	return ref.ID, nil
}

func (s *taskStore) List(ctx context.Context, uid string) ([]models.Task, error) {
	iter := s.userQuery(uid).Documents(ctx)
	defer iter.Stop()
	return decodeTasks(iter)
}

func (s *taskStore) Get(ctx context.Context, uid, taskID string) (*models.Task, error) {
	doc, err := s.collection().Doc(taskID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("task not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get task", err)
	}
	task, err := decodeTask(doc)
	if err != nil {
		return nil, err
	}
	if task.UserID != uid {
		return nil, errs.NewNotFoundError("task not found")
	}
	return task, nil
}

// UpdateStatus sets the status of a task owned by uid.
func (s *taskStore) UpdateStatus(ctx context.Context, uid, taskID string, st models.TaskStatus) error {
	return s.owned(ctx, "update", uid, taskID, func(tx *firestore.Transaction, ref *firestore.DocumentRef, _ *models.Task) error {
		return tx.Update(ref, []firestore.Update{{Path: "status", Value: st}})
	})
}

// Toggle flips the status of a task owned by uid and returns the new status.
func (s *taskStore) Toggle(ctx context.Context, uid, taskID string) (models.TaskStatus, error) {
	var next models.TaskStatus
	err := s.owned(ctx, "update", uid, taskID, func(tx *firestore.Transaction, ref *firestore.DocumentRef, task *models.Task) error {
		next = task.Status.Toggle()
		return tx.Update(ref, []firestore.Update{{Path: "status", Value: next}})
	})
	return next, err
}

func (s *taskStore) Delete(ctx context.Context, uid, taskID string) error {
	return s.owned(ctx, "delete", uid, taskID, func(tx *firestore.Transaction, ref *firestore.DocumentRef, _ *models.Task) error {
		return tx.Delete(ref)
	})
}

// owned runs fn in a transaction after checking that taskID exists and
// belongs to uid. Missing and foreign tasks are both reported as not found.
func (s *taskStore) owned(ctx context.Context, op, uid, taskID string,
	fn func(tx *firestore.Transaction, ref *firestore.DocumentRef, task *models.Task) error) error {
	ref := s.collection().Doc(taskID)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errs.NewNotFoundError("task not found")
			}
			return err
		}
		task, err := decodeTask(doc)
		if err != nil {
			return err
		}
		if task.UserID != uid {
			return errs.NewNotFoundError("task not found")
		}
		return fn(tx, ref, task)
	})
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *errs.NotFoundError, *errs.DatabaseError:
		return err
	default:
		return errs.NewDatabaseError(op, "failed to "+op+" task", err)
	}
}

type documentIterator interface {
	Next() (*firestore.DocumentSnapshot, error)
}

func decodeTasks(iter documentIterator) ([]models.Task, error) {
	tasks := []models.Task{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to list tasks", err)
		}
		task, err := decodeTask(doc)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

func decodeTask(doc *firestore.DocumentSnapshot) (*models.Task, error) {
	var task models.Task
	if err := doc.DataTo(&task); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse task data", err)
	}
	task.ID = doc.Ref.ID
	return &task, nil
}
