package main

// Version is the yeyo release. yeyo tracks this line itself; release builds
// may also set it with -ldflags "-X main.Version=...".
var (
	Version = "0.3.0"
)
