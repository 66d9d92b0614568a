package inhibit

// Assertion is one active sleep-prevention hold reported by the
// platform power manager.
type Assertion struct {
	PID  int
	What string
	Who  string
	Why  string
}

// Assertions lists the sleep-prevention holds currently active on this
// machine, ours included. Implemented per platform: pmset on macOS,
// logind over D-Bus on Linux.
func Assertions() ([]Assertion, error) {
	return platformAssertions()
}
