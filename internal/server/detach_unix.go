//go:build unix

package server

import (
	"os/exec"
	"syscall"
)

// detach puts the child in its own session so closing the console does not stop it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
