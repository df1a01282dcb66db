package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kubernetes-incubator/kube-aws-up/logger"
	"github.com/kubernetes-incubator/kube-aws-up/releases"
	"github.com/kubernetes-incubator/kube-aws-up/toolchain"
)

// VERSION set by build script
var VERSION = "UNKNOWN"

var (
	cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print version information and exit",
		Long:  ``,
		RunE:  runCmdVersion,
	}

	versionOpts = struct {
		latest bool
	}{}
)

func init() {
	RootCmd.AddCommand(cmdVersion)
	cmdVersion.Flags().BoolVar(&versionOpts.latest, "latest", false, "Also check the latest published release of the bootstrapping tool")
}

func runCmdVersion(_ *cobra.Command, _ []string) error {
	logger.Infof("kube-aws-up version %s", VERSION)

	if !versionOpts.latest {
		return nil
	}

	ctx := context.Background()

	latest, err := releases.LatestBootstrapperVersion(ctx)
	if err != nil {
		return err
	}

	tool := toolchain.Bootstrapper()
	installed, err := tool.Version(ctx)
	if err != nil {
		logger.Warnf("%s is not installed. Latest release is %s", tool.Name, latest)
		return nil
	}

	if installed.LessThan(latest) {
		logger.Warnf("%s %s is installed but %s is available", tool.Name, installed, latest)
	} else {
		logger.Infof("%s %s is up to date", tool.Name, installed)
	}
	return nil
}
