package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kubernetes-incubator/kube-aws-up/logger"
	"github.com/kubernetes-incubator/kube-aws-up/toolchain"
)

var (
	cmdDoctor = &cobra.Command{
		Use:          "doctor",
		Short:        "Check that the external tools and AWS credentials are usable",
		Long:         ``,
		RunE:         runCmdDoctor,
		SilenceUsage: true,
	}
)

func init() {
	RootCmd.AddCommand(cmdDoctor)
}

// checkToolchain verifies the external binaries exist and are recent enough.
func checkToolchain(ctx context.Context) error {
	for _, tool := range []toolchain.Tool{toolchain.Bootstrapper(), toolchain.Kubectl()} {
		path, err := tool.Lookup()
		if err != nil {
			return err
		}
		if err := tool.CheckVersion(ctx); err != nil {
			return err
		}
		v, err := tool.Version(ctx)
		if err != nil {
			return err
		}
		logger.Infof("%s %s (%s)", tool.Name, v, path)
	}
	return nil
}

func runCmdDoctor(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if err := checkToolchain(ctx); err != nil {
		return err
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if cfg.Region.IsEmpty() {
		logger.Warn("no region configured, skipping the AWS credentials check")
		logger.Heading("All checks passed")
		return nil
	}

	checker, err := newChecker()
	if err != nil {
		return err
	}
	identity, err := checker.CallerIdentity()
	if err != nil {
		return err
	}
	logger.Infof("AWS credentials OK:\n%s", identity)

	logger.Heading("All checks passed")
	return nil
}
