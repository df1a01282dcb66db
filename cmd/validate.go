package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kubernetes-incubator/kube-aws-up/cluster"
	"github.com/kubernetes-incubator/kube-aws-up/logger"
)

var (
	cmdValidate = &cobra.Command{
		Use:          "validate",
		Short:        "Validate account state and rendered cluster assets",
		Long:         ``,
		RunE:         runCmdValidate,
		SilenceUsage: true,
	}
)

func init() {
	RootCmd.AddCommand(cmdValidate)
	bindSettingsFlags(cmdValidate)
}

func runCmdValidate(_ *cobra.Command, _ []string) error {
	c, err := newCluster()
	if err != nil {
		return err
	}

	if err := validateRequired(
		flag{"--s3-uri", c.Settings.S3URI},
	); err != nil {
		return err
	}

	logger.Info("validating account state...")
	if err := c.Preflight(cluster.PreflightOptions{}); err != nil {
		return err
	}

	logger.Info("validating rendered assets...")
	if err := c.ValidateAssets(context.Background()); err != nil {
		return err
	}

	logger.Heading("Validation OK!")
	return nil
}
