package inhibit

import "testing"

func TestParsePmsetAssertions(t *testing.T) {
	out := `Assertion status system-wide:
   BackgroundTask                 0
   PreventUserIdleSystemSleep     1
   PreventUserIdleDisplaySleep    0

Listed by owning process:
  pid 843(caffeinate): [0x0000cafe00018b1f] 00:00:58 PreventUserIdleSystemSleep named: "caffeinate command-line tool"
	Timeout will fire in 0 secs Action=TimeoutActionRelease
  pid 538(powerd): [0x000000000000012c] 00:14:52 InternalPreventDisplaySleep named: "com.apple.powermanagement.delaydisplayoff"

No kernel assertions.
`
	got := parsePmsetAssertions(out)
	if len(got) != 2 {
		t.Fatalf("parsed %d assertions, want 2: %+v", len(got), got)
	}

	first := got[0]
	if first.PID != 843 || first.Who != "caffeinate" {
		t.Errorf("first owner = %d/%q, want 843/caffeinate", first.PID, first.Who)
	}
	if first.What != "PreventUserIdleSystemSleep" {
		t.Errorf("first.What = %q", first.What)
	}
	if first.Why != "caffeinate command-line tool" {
		t.Errorf("first.Why = %q", first.Why)
	}

	if got[1].PID != 538 || got[1].What != "InternalPreventDisplaySleep" {
		t.Errorf("second assertion = %+v", got[1])
	}
}

func TestParsePmsetAssertionsNoneListed(t *testing.T) {
	out := `Assertion status system-wide:
   BackgroundTask                 0
   PreventUserIdleSystemSleep     0
`
	if got := parsePmsetAssertions(out); len(got) != 0 {
		t.Errorf("parsed %d assertions from idle output, want 0", len(got))
	}
}
