package cmd

import (
	"github.com/spf13/cobra"
)

type BaseCmd struct {
	cmd *cobra.Command
}

func (t *BaseCmd) GetCmd() *cobra.Command {
	return t.cmd
}

func (t *BaseCmd) SetCmd(cmd *cobra.Command) {
	t.cmd = cmd
}
