package ordermaint

import "github.com/dsbender/ordermaint/internal/errs"

// SaturationError is returned by Priority.Insert when a universe has
// no room left to admit another priority without exceeding its label
// width. It is aliased here so callers can type-assert against
// *ordermaint.SaturationError without importing internal/errs, which
// remains unexported surface shared only among this module's own
// backends.
type SaturationError = errs.SaturationError

// ProgrammerError is panicked, never returned, by a backend when a
// caller violates the Priority contract: using a handle after it has
// been dropped, or dropping it twice.
type ProgrammerError = errs.ProgrammerError
