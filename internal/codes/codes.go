package codes

// Process exit codes returned by the plhub CLI.
const (
	// OK indicates the command completed successfully
	OK = 0

	// Failure indicates a generic command failure
	Failure = 1

	// NoCommand indicates plhub was invoked without a command (help is printed)
	NoCommand = 2

	// Usage indicates a command line parse error
	Usage = 64

	// Runtime indicates the PohLang runtime reported an error
	Runtime = 70

	// Interrupt indicates the command was stopped by Ctrl-C
	Interrupt = 130
)

// descriptions maps exit codes to short human-readable descriptions
var descriptions = map[int]string{
	OK:        "Success",
	Failure:   "Command failed",
	NoCommand: "No command given",
	Usage:     "Invalid usage",
	Runtime:   "Runtime error",
	Interrupt: "Interrupted",
}

// Describe returns the description for an exit code, or a generic message if unknown
func Describe(code int) string {
	if msg, ok := descriptions[code]; ok {
		return msg
	}

	return "Unknown error"
}
