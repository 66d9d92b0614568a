package inhibit

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
)

// pmset prints per-process assertions as, for example:
//
//	pid 843(caffeinate): [0x0000cafe00018b1f] 00:00:58 PreventUserIdleSystemSleep named: "caffeinate command-line tool"
var pmsetAssertionRE = regexp.MustCompile(`(?m)^\s*pid (\d+)\(([^)]*)\):\s+\[[^\]]*\]\s+[0-9:]+\s+(\S+)\s+named:\s+"(.*)"`)

func platformAssertions() ([]Assertion, error) {
	out, err := exec.Command("pmset", "-g", "assertions").Output()
	if err != nil {
		return nil, fmt.Errorf("running pmset: %w", err)
	}
	return parsePmsetAssertions(string(out)), nil
}

func parsePmsetAssertions(out string) []Assertion {
	var assertions []Assertion
	for _, m := range pmsetAssertionRE.FindAllStringSubmatch(out, -1) {
		pid, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		assertions = append(assertions, Assertion{
			PID:  pid,
			Who:  m[2],
			What: m[3],
			Why:  m[4],
		})
	}
	return assertions
}
