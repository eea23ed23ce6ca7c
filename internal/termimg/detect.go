package termimg

import "os"

// Detect picks the best protocol for the terminal described by the
// environment. A nil getenv reads the process environment.
func Detect(getenv func(string) string) Protocol {
	if getenv == nil {
		getenv = os.Getenv
	}

	term := getenv("TERM")
	program := getenv("TERM_PROGRAM")

	switch {
	case getenv("KITTY_WINDOW_ID") != "", term == "xterm-kitty", program == "ghostty", term == "xterm-ghostty":
		return ProtocolKitty
	case program == "iTerm.app", program == "WezTerm", getenv("LC_TERMINAL") == "iTerm2":
		return ProtocolITerm
	default:
		return ProtocolBlocks
	}
}
