package model

import "time"

// BatchSummary captures metrics from a single batch assessment run.
type BatchSummary struct {
	FilePath         string
	FileSHA256       string
	BatchID          string
	RecordsRead      int64
	RecordsAssessed  int64
	RecordsFailed    int64
	FailedConditions map[Condition]int64
	RowsStored       int64
	DurationAssess   time.Duration
	DurationStore    time.Duration
	DurationTotal    time.Duration
}
