package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/mserebryaakov/aggregator-pim/internal/client"
	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

type DialogResult string

const (
	Deleted   DialogResult = "deleted"
	Dismissed DialogResult = "dismissed"
)

// Deleter removes one record by identifier.
type Deleter interface {
	Delete(ctx context.Context, id int64) (*client.Response[struct{}], error)
}

// DeleteDialog asks for confirmation before a record is deleted.
type DeleteDialog[T entity.Entity] struct {
	service Deleter
	item    T
	onClose func(context.Context, DialogResult) error

	mu     sync.Mutex
	closed bool
	result DialogResult
	err    error
}

func NewDeleteDialog[T entity.Entity](service Deleter, item T, onClose func(context.Context, DialogResult) error) *DeleteDialog[T] {
	return &DeleteDialog[T]{
		service: service,
		item:    item,
		onClose: onClose,
	}
}

func (d *DeleteDialog[T]) Item() T {
	return d.item
}

func (d *DeleteDialog[T]) Title() string {
	return "Confirm delete operation"
}

func (d *DeleteDialog[T]) Prompt() string {
	id, _ := d.item.Identifier()
	return fmt.Sprintf("Are you sure you want to delete record %d?", id)
}

// Confirm deletes the record and closes with Deleted. On failure the dialog
// stays open.
func (d *DeleteDialog[T]) Confirm(ctx context.Context) error {
	id, ok := d.item.Identifier()
	if !ok {
		return fmt.Errorf("cannot delete an unsaved record")
	}

	if _, err := d.service.Delete(ctx, id); err != nil {
		d.mu.Lock()
		d.err = err
		d.mu.Unlock()
		return err
	}

	return d.close(ctx, Deleted)
}

// Cancel dismisses the dialog without deleting anything.
func (d *DeleteDialog[T]) Cancel(ctx context.Context) error {
	return d.close(ctx, Dismissed)
}

func (d *DeleteDialog[T]) close(ctx context.Context, result DialogResult) error {
	d.mu.Lock()
	d.closed = true
	d.result = result
	d.err = nil
	onClose := d.onClose
	d.mu.Unlock()

	if onClose != nil {
		return onClose(ctx, result)
	}
	return nil
}

func (d *DeleteDialog[T]) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Result is empty while the dialog is open.
func (d *DeleteDialog[T]) Result() DialogResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result
}

func (d *DeleteDialog[T]) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}
