package notify

import (
	"os/exec"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ShellRunner executes configured hook commands through the shell. Command
// exit statuses are ignored; only a failure to start the shell is reported.
type ShellRunner struct{}

func NewShellRunner() *ShellRunner {
	return &ShellRunner{}
}

func (r *ShellRunner) Run(command string) error {
	if command == "" {
		return nil
	}

	cmd := exec.Command("sh", "-c", command)
	if err := cmd.Start(); err != nil {
		return pkgerrors.Wrapf(err, "failed to run command %q", command)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			logrus.Debugf("command %q exited: %v", command, err)
		}
	}()
	return nil
}

// RunMessage renders the message-command template and runs it. The first
// two %s placeholders receive the message text and the battery level.
func (r *ShellRunner) RunMessage(command, message string, level int) error {
	return r.Run(RenderMessageCommand(command, message, level))
}

// RenderMessageCommand substitutes the message and level into a %s-style
// command template. Templates with fewer than two placeholders simply use
// what they reference; extra arguments are not appended.
func RenderMessageCommand(command, message string, level int) string {
	out := command
	for _, arg := range []string{message, strconv.Itoa(level)} {
		if !strings.Contains(out, "%s") {
			break
		}
		out = strings.Replace(out, "%s", arg, 1)
	}
	return out
}
