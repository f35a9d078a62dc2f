package writer

import "time"

// WriterMetrics tracks write outcomes for one writer.
type WriterMetrics struct {
	Inserts    int64 // rows actually written
	Duplicates int64 // rows skipped by the primary key
	Errors     int64 // failed inserts
}

// pollInterval is how long a writer sleeps when its buffer is empty.
const pollInterval = 10 * time.Millisecond
