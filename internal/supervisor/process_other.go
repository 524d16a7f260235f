//go:build !linux

package supervisor

import "os/exec"

// Only Linux has a parent-death signal; elsewhere workers notice a dead
// supervisor when shutdown is requested through their own signals.
func setParentDeathSignal(*exec.Cmd) {}
