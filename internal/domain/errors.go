package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound = errors.New("domain: not found")
	ErrConflict = errors.New("domain: conflict")
	ErrInvalid  = errors.New("domain: invalid")
)

// Entity kinds used in not-found messages.
const (
	KindEstate         = "Estate"
	KindMerchant       = "Merchant"
	KindOperator       = "Operator"
	KindContract       = "Contract"
	KindProduct        = "Product"
	KindTransactionFee = "Transaction Fee"
	KindDevice         = "Device"
)

// NotFoundError reports a missing entity by kind and id.
// It matches ErrNotFound under errors.Is.
type NotFoundError struct {
	Kind string
	ID   uuid.UUID
}

// NewNotFound returns a NotFoundError for the given kind and id.
func NewNotFound(kind string, id uuid.UUID) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError reports an entity that already exists under the given id.
// It matches ErrConflict under errors.Is.
type ConflictError struct {
	Kind string
	ID   uuid.UUID
}

func NewConflict(kind string, id uuid.UUID) *ConflictError {
	return &ConflictError{Kind: kind, ID: id}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Kind, e.ID)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// InvalidError carries a human-readable validation message and matches
// ErrInvalid under errors.Is.
type InvalidError struct {
	Msg string
}

// Invalid formats a validation failure.
func Invalid(format string, args ...any) *InvalidError {
	return &InvalidError{Msg: fmt.Sprintf(format, args...)}
}

func (e *InvalidError) Error() string {
	return e.Msg
}

func (e *InvalidError) Is(target error) bool {
	return target == ErrInvalid
}
