package supervisor

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/google/uuid"

	"github.com/seekjob/desktophost/errors"
	"github.com/seekjob/desktophost/locator"
	"github.com/seekjob/desktophost/logger"
)

// Spawn launches the resolved backend command with extra environment entries
// merged onto the host's environment, stdout and stderr redirected to
// append-mode sinks (created if absent). A goroutine reaps the child so its
// exit is observable through the returned Handle.
func Spawn(cmd locator.Command, extraEnv []string, stdoutPath, stderrPath string) (*Handle, error) {
	stdout, err := openSink(stdoutPath)
	if err != nil {
		return nil, err
	}
	stderr, err := openSink(stderrPath)
	if err != nil {
		stdout.Close()
		return nil, err
	}

	c := exec.Command(cmd.Program, cmd.Args...) //nolint:gosec // launching the resolved backend is the purpose of this package
	c.Env = mergeEnv(extraEnv)
	c.Stdout = stdout
	c.Stderr = stderr

	// Own process group so the kill reaches the whole tree.
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := c.Start(); err != nil {
		stdout.Close()
		stderr.Close()
		return nil, errors.SpawnFailed(cmd.Program, err)
	}

	h := &Handle{
		proc: c.Process,
		pid:  c.Process.Pid,
		id:   uuid.NewString(),
		done: make(chan struct{}),
	}

	log := logger.WithComponent("supervisor")
	log.Info("backend process spawned", logger.Fields(
		logger.FieldPid, h.pid,
		logger.FieldInstance, h.id,
		logger.FieldPath, cmd.Program,
	))

	go func() {
		err := c.Wait()
		stdout.Close()
		stderr.Close()
		if err != nil {
			log.Debug("backend process exited", logger.Fields(
				logger.FieldPid, h.pid,
				logger.FieldError, err.Error(),
			))
		} else {
			log.Debug("backend process exited cleanly", logger.Fields(logger.FieldPid, h.pid))
		}
		close(h.done)
	}()

	return h, nil
}

func openSink(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.IO("open", path, err)
	}
	return f, nil
}
