package inhibit

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// logindInhibitor mirrors one (ssssuu) row of the ListInhibitors reply.
type logindInhibitor struct {
	What string
	Who  string
	Why  string
	Mode string
	UID  uint32
	PID  uint32
}

func platformAssertions() ([]Assertion, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to system bus: %w", err)
	}

	obj := conn.Object("org.freedesktop.login1", "/org/freedesktop/login1")
	call := obj.Call("org.freedesktop.login1.Manager.ListInhibitors", 0)
	if call.Err != nil {
		return nil, fmt.Errorf("listing logind inhibitors: %w", call.Err)
	}

	var inhibitors []logindInhibitor
	if err := call.Store(&inhibitors); err != nil {
		return nil, fmt.Errorf("decoding logind inhibitors: %w", err)
	}

	assertions := make([]Assertion, 0, len(inhibitors))
	for _, in := range inhibitors {
		assertions = append(assertions, Assertion{
			PID:  int(in.PID),
			What: fmt.Sprintf("%s (%s)", in.What, in.Mode),
			Who:  in.Who,
			Why:  in.Why,
		})
	}
	return assertions, nil
}
