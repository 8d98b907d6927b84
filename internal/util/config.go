package util

// Config holds runtime settings and flags.
type Config struct {
	APIURL       string
	DSN          string // empty keeps history in memory
	SettingsPath string
	Theme        string // overrides the saved theme when set
	Debug        bool
	Version      string
}
