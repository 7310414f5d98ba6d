package ledger

import "errors"

// ErrSlotCapacityExceeded is returned by AutoDiffParams.AddType1/AddType2
// once a node element has already claimed its maximum number of upstream
// slots (6 type-1, 5 type-2). Exceeding the capacity is a construction-time
// error, never a silent truncation.
var ErrSlotCapacityExceeded = errors.New("ledger: upstream slot capacity exceeded")
