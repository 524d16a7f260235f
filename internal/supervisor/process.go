package supervisor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Process is a running worker.
type Process interface {
	Pid() int
	// Wait blocks until the process exits.
	Wait() error
	Signal(sig os.Signal) error
	Kill() error
}

// Spawner starts the worker for a slot.
type Spawner interface {
	Spawn(slot int) (Process, error)
}

// ExecSpawner re-executes a binary, normally the current one, with the
// worker role set in its environment.
type ExecSpawner struct {
	Path   string
	Args   []string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// SelfSpawner returns an ExecSpawner for the running executable that passes
// extraEnv on top of the current environment.
func SelfSpawner(extraEnv ...string) (*ExecSpawner, error) {
	path, err := os.Executable()
	if err != nil {
		return nil, err
	}
	return &ExecSpawner{
		Path:   path,
		Args:   os.Args[1:],
		Env:    append(os.Environ(), extraEnv...),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

func (s *ExecSpawner) command(slot int) *exec.Cmd {
	cmd := exec.Command(s.Path, s.Args...)
	cmd.Env = append(append([]string{}, s.Env...), fmt.Sprintf("WORKER_SLOT=%d", slot))
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	setParentDeathSignal(cmd)
	return cmd
}

func (s *ExecSpawner) Spawn(slot int) (Process, error) {
	cmd := s.command(slot)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &execProcess{cmd: cmd}, nil
}

type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Pid() int                   { return p.cmd.Process.Pid }
func (p *execProcess) Wait() error                { return p.cmd.Wait() }
func (p *execProcess) Signal(sig os.Signal) error { return p.cmd.Process.Signal(sig) }
func (p *execProcess) Kill() error                { return p.cmd.Process.Kill() }
