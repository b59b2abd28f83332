package tipcheck

// Worker configuration constants.
const (
	workerChannelMultiplier = 2
)

// Report constants.
const (
	percentageMultiplier = 100
	reportFilePermission = 0o600
	directoryPermission  = 0o750
)
