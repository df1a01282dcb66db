package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kubernetes-incubator/kube-aws-up/logger"
)

var (
	cmdRender = &cobra.Command{
		Use:          "render",
		Short:        "Render cluster credentials and stack templates",
		Long:         ``,
		RunE:         runCmdRender,
		SilenceUsage: true,
	}
)

func init() {
	RootCmd.AddCommand(cmdRender)
	bindSettingsFlags(cmdRender)
}

func runCmdRender(_ *cobra.Command, _ []string) error {
	c, err := newCluster()
	if err != nil {
		return err
	}

	if err := c.Render(context.Background()); err != nil {
		return err
	}

	successMsg :=
		`Success! Credentials and stack templates rendered.

Next steps:
1. (Optional) Validate your changes to %s with "kube-aws-up validate"
2. Start the cluster with "kube-aws-up up".
`
	logger.Headingf(successMsg, c.DescriptorPath())
	return nil
}
