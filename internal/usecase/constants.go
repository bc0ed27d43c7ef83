package usecase

const (
	// DefaultRollupConcurrency bounds how many entity reports a rollup builds at once.
	DefaultRollupConcurrency = 8

	// EntityPageSize is the page size used when listing a company's entities.
	EntityPageSize = 500

	// Report outcome labels
	StatusSuccess  = "success"
	StatusNotFound = "not_found"
	StatusFailure  = "failure"
	StatusCanceled = "canceled"
)
