package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kubernetes-incubator/kube-aws-up/logger"
)

var (
	cmdDestroy = &cobra.Command{
		Use:          "destroy",
		Short:        "Destroy an existing Kubernetes cluster",
		Long:         ``,
		RunE:         runCmdDestroy,
		SilenceUsage: true,
	}

	destroyOpts = struct {
		force       bool
		cleanAssets bool
	}{}
)

func init() {
	RootCmd.AddCommand(cmdDestroy)
	bindSettingsFlags(cmdDestroy)
	cmdDestroy.Flags().BoolVar(&destroyOpts.force, "force", false, "Don't ask for confirmation")
	cmdDestroy.Flags().BoolVar(&destroyOpts.cleanAssets, "clean-s3", false, "Also delete the cluster's assets from the S3 bucket")
}

func runCmdDestroy(_ *cobra.Command, _ []string) error {
	c, err := newCluster()
	if err != nil {
		return err
	}

	if !destroyOpts.force && !destroyConfirmation(c.Settings.ClusterName) {
		logger.Info("Operation cancelled")
		return nil
	}

	if err := c.Destroy(context.Background()); err != nil {
		return err
	}

	if destroyOpts.cleanAssets {
		if err := c.CleanAssets(); err != nil {
			return err
		}
	}

	logger.Info("CloudFormation stack is being destroyed. This will take several minutes")
	return nil
}

func destroyConfirmation(clusterName string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("This operation will destroy cluster %s. Are you sure? [y,n]: ", clusterName)
	text, _ := reader.ReadString('\n')
	text = strings.TrimSuffix(strings.ToLower(text), "\n")

	return text == "y" || text == "yes"
}
