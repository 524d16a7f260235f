//go:build linux

package supervisor

import (
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecSpawner_WorkerDiesWithSupervisor(t *testing.T) {
	cmd := (&ExecSpawner{Path: "/bin/true", Env: []string{"APP_ROLE=worker"}}).command(2)

	require.NotNil(t, cmd.SysProcAttr)
	assert.Equal(t, syscall.SIGTERM, cmd.SysProcAttr.Pdeathsig)
	assert.Contains(t, cmd.Env, "APP_ROLE=worker")
	assert.Contains(t, cmd.Env, "WORKER_SLOT=2")
}

func TestExecSpawner_SpawnsAndWaits(t *testing.T) {
	p, err := (&ExecSpawner{Path: "/bin/sh", Args: []string{"-c", "exit 3"}}).Spawn(0)
	require.NoError(t, err)
	assert.Positive(t, p.Pid())
	assert.Error(t, p.Wait())
}
