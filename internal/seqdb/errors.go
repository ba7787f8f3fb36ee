package seqdb

import "errors"

// ErrSequenceNotAligned is returned by Seq's query-level accessors when
// an aligned view is requested but aa_shift/nuc_shift is not Aligned.
var ErrSequenceNotAligned = errors.New("seqdb: sequence not aligned")

// ErrAlignmentFailed marks a Seq whose translate-and-align attempt
// produced no catalog match. It is never returned as an error from
// ingest — spec.md §7 records it on the Seq's shift, not as an
// exception — but is exposed for callers that want to test for it.
var ErrAlignmentFailed = errors.New("seqdb: alignment failed")
