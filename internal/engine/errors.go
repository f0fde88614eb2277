package engine

import "fmt"

// ValidationError reports caller input the engine refuses to act on.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a referenced record that does not exist.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// InvalidStateError reports a transition attempted from a non-active quest.
type InvalidStateError struct {
	QuestID int64
	Status  QuestStatus
}

func (e InvalidStateError) Error() string {
	return fmt.Sprintf("quest %d is already %s", e.QuestID, e.Status)
}

// StorageError wraps a persistence failure. The operation left no partial state behind.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	return fmt.Sprintf("%s: storage: %v", e.Op, e.Err)
}

func (e StorageError) Unwrap() error { return e.Err }

// classify leaves typed engine errors alone and wraps everything else as a StorageError.
func classify(op string, err error) error {
	switch err.(type) {
	case nil:
		return nil
	case ValidationError, NotFoundError, InvalidStateError, StorageError:
		return err
	default:
		return StorageError{Op: op, Err: err}
	}
}
