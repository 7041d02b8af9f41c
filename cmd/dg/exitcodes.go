package main

// Exit codes
const (
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file, invalid parameters)
	ExitDataError   = 3 // Data error (node index out of range, bad SQL)
)
