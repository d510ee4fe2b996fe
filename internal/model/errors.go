package model

import "errors"

// Domain errors for the model package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, model.ErrInvalidSelector) {
//	    // handle malformed selector segment
//	}
//
// Malformed selector segments are recoverable: the segment contributes
// no candidates and the rest of the query still evaluates, so NewView
// returns a usable view alongside the joined errors. Structural
// precondition violations (invalid tags, reindexing a non-root model,
// unbalanced transform stacks) are caller bugs and panic instead.
var (
	// ErrInvalidSelector is returned when a selector segment cannot be
	// parsed (bad range syntax, unparsable index, dangling operator).
	ErrInvalidSelector = errors.New("model: invalid selector")
)
