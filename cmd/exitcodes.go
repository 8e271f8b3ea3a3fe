package main

const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad env, unreadable config file)
	ExitDataError   = 3 // Data error (unsupported URL, unreadable input file)
)
