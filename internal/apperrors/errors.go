package apperrors

import "errors"

// Business errors. These are expected outcomes and are matched with errors.Is;
// handlers translate them to HTTP statuses, services wrap them with context
// via fmt.Errorf("%w: ...").

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks
// (unbalanced entry, non-sequential lines, blank required field, unknown account).
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConcurrency indicates an optimistic-concurrency conflict: the caller's
// version is stale relative to the stored row. The stored row is left untouched,
// so re-reading and retrying is always safe.
var ErrConcurrency = errors.New("stale version, entry was modified concurrently")

// ErrInvalidState indicates an illegal status transition, such as editing a
// confirmed journal entry.
var ErrInvalidState = errors.New("operation not allowed in current status")

// ErrCircularReference indicates that attaching an account structure node to the
// proposed parent would introduce a cycle in the hierarchy.
var ErrCircularReference = errors.New("circular reference in account hierarchy")

// ErrChildrenExist indicates that an account structure node cannot be removed
// while other nodes still reference it as their parent.
var ErrChildrenExist = errors.New("account structure has children")

// ErrFormulaEvaluation indicates that an auto-journal amount formula could not
// be evaluated (unknown parameter, syntax error, arithmetic error).
var ErrFormulaEvaluation = errors.New("formula evaluation failed")

// ErrForbidden indicates the authenticated user may not perform the action.
var ErrForbidden = errors.New("forbidden")

// Infrastructure errors. Kept distinct from business errors so callers can
// tell "your request is invalid" from "try again later".

// ErrStorage indicates the backing store failed (unreachable, timeout). It is
// propagated upward unmodified; no retry happens inside the core.
var ErrStorage = errors.New("storage failure")

// ErrInternal indicates an unexpected internal condition that should be
// unreachable; it maps to a 500 and is worth alerting on.
var ErrInternal = errors.New("internal error")
