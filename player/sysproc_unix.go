//go:build !windows

package player

import (
	"os/exec"
	"syscall"
)

// sysProcAttr detaches mpv into its own process group so terminal signals
// aimed at reel do not reach it.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// killProcess kills mpv together with anything it spawned.
func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	return cmd.Process.Kill()
}
