package process

import "testing"

// Only an unused PID is safe here: 0 would target this test's own group.
func TestKillProcessGroup_UnknownPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}
