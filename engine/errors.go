package engine

import "errors"

// Failure taxonomy for engine operations. Every operation validates against
// these before mutating anything, so a returned error always means the
// state store is unchanged.
var (
	// ErrNotFound: a target, recipe, quest, or slot is absent from the
	// relevant scope.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState: the requested transition is not legal from the
	// current combat or quest status.
	ErrInvalidState = errors.New("invalid state")

	// ErrUnmetRequirement: a level, material, tool, or item requirement
	// is not satisfied.
	ErrUnmetRequirement = errors.New("requirement not met")

	// ErrAlreadyInState: duplicate accept, learn, or equip conflict.
	ErrAlreadyInState = errors.New("already done")
)
