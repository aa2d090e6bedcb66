package exitcode

const (
	Success              = 0
	UsageError           = 1
	ValidationError      = 2
	DBConnError          = 3
	ModelUnavailable     = 4
	IncompleteAssessment = 5
	StoreError           = 6
	ExportError          = 7
	PartialSuccess       = 8
)
