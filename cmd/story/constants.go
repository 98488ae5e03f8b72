package main

// Default limits for CLI commands.
const (
	DefaultTypesLimit = 25
	DefaultListLimit  = 50
)
