package httperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindMissingField       Kind = "missing_field"
	KindReferenceNotFound  Kind = "reference_not_found"
	KindInvalidFormat      Kind = "invalid_format"
	KindInvalidRequest     Kind = "invalid_request"
	KindPermissionDenied   Kind = "permission_denied"
	KindUnauthenticated    Kind = "unauthenticated"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindStorageFailure     Kind = "storage_failure"
)

// ErrRecordNotFound is returned by repositories when a row does not exist.
var ErrRecordNotFound = errors.New("record not found")

type BusinessError struct {
	Kind  Kind
	Code  string
	Field string
	Value string
	Err   error
}

func (e BusinessError) Error() string {
	switch e.Kind {
	case KindMissingField:
		return fmt.Sprintf("%s is required", e.Field)
	case KindReferenceNotFound:
		return fmt.Sprintf("%s %s does not exist", e.Field, e.Value)
	case KindInvalidFormat:
		return fmt.Sprintf("invalid format for %s: %q", e.Field, e.Value)
	case KindStorageFailure:
		if e.Err != nil {
			return "storage failure: " + e.Err.Error()
		}
		return "storage failure"
	}
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindInvalidRequest, Code: code}
}

func MissingField(field string) error {
	return BusinessError{Kind: KindMissingField, Code: "missing_field", Field: field}
}

func ReferenceNotFound(field string, id any) error {
	return BusinessError{
		Kind:  KindReferenceNotFound,
		Code:  "reference_not_found",
		Field: field,
		Value: fmt.Sprint(id),
	}
}

func InvalidFormat(field string, raw any) error {
	return BusinessError{
		Kind:  KindInvalidFormat,
		Code:  "invalid_format",
		Field: field,
		Value: fmt.Sprint(raw),
	}
}

func InvalidRequest(err error) error {
	return BusinessError{Kind: KindInvalidRequest, Code: "invalid_request", Err: err}
}

func PermissionDenied() error {
	return BusinessError{Kind: KindPermissionDenied, Code: "forbidden"}
}

func Unauthenticated(code string) error {
	return BusinessError{Kind: KindUnauthenticated, Code: code}
}

func InvalidCredentials() error {
	return BusinessError{Kind: KindInvalidCredentials, Code: "invalid_credentials"}
}

func NotFound(entity string) error {
	return BusinessError{Kind: KindNotFound, Code: entity + "_not_found", Field: entity}
}

func Conflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

// StorageFailure wraps an error raised by the persistence layer. Errors that
// are already classified pass through unchanged.
func StorageFailure(err error) error {
	if err == nil {
		return nil
	}
	var be BusinessError
	if errors.As(err, &be) {
		return err
	}
	return BusinessError{Kind: KindStorageFailure, Code: "storage_failure", Err: err}
}

// StorageConstraint reports a constraint the storage layer rejected, e.g. a
// duplicate national id.
func StorageConstraint(code, constraint string, err error) error {
	return BusinessError{Kind: KindStorageFailure, Code: code, Field: constraint, Err: err}
}

func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Lookup translates a repository read error: a missing row becomes
// NotFound(entity), anything else a storage failure.
func Lookup(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrRecordNotFound) {
		return NotFound(entity)
	}
	return StorageFailure(err)
}
