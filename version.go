package gestalt

// Version is the library version reported by the CLI and the HTTP adapter.
var Version = "0.1.0"
