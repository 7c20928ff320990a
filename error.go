package expcache

// SentinelError is an error.
type SentinelError string

const (
	// ErrInvalidArgument indicates absent key or value passed to Put.
	ErrInvalidArgument = SentinelError("invalid argument")

	// ErrBackgroundTaskFault indicates unexpected failure of a sweep target.
	ErrBackgroundTaskFault = SentinelError("background task fault")

	// ErrNothingToInvalidate indicates no caches were added to Invalidator.
	ErrNothingToInvalidate = SentinelError("nothing to invalidate")

	// ErrAlreadyInvalidated indicates recent invalidation.
	ErrAlreadyInvalidated = SentinelError("already invalidated")
)

// Error implements error.
func (e SentinelError) Error() string {
	return string(e)
}
