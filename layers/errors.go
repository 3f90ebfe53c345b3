package layers

import "errors"

// ErrPrecondition reports that a command's precondition does not hold (no
// active object, unsupported geometry, nothing selected). The command
// performs no mutation.
var ErrPrecondition = errors.New("layers: precondition failed")

// ErrInconsistentGraph reports that a node or template the synchronizer
// expects is missing from the material's node tree, or that the graph-derived
// layer count disagrees with the slot store.
var ErrInconsistentGraph = errors.New("layers: inconsistent node graph")
