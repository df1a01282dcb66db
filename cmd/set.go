package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kubernetes-incubator/kube-aws-up/logger"
)

var (
	cmdSet = &cobra.Command{
		Use:          "set PATH VALUE",
		Short:        "Set a single value in the cluster descriptor by dotted path",
		Long:         `Set a nested descriptor value, e.g. "set worker.nodePools.0.count 3". Comments in the descriptor do not survive this operation.`,
		RunE:         runCmdSet,
		SilenceUsage: true,
	}
)

func init() {
	RootCmd.AddCommand(cmdSet)
}

func runCmdSet(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("set takes exactly two arguments, got %d", len(args))
	}

	c, err := newCluster()
	if err != nil {
		return err
	}

	if err := c.SetDescriptorPath(args[0], args[1]); err != nil {
		return err
	}

	logger.Infof("set %s in %s", args[0], c.DescriptorPath())
	return nil
}
