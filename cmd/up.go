package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/kubernetes-incubator/kube-aws-up/cluster"
	"github.com/kubernetes-incubator/kube-aws-up/logger"
)

var (
	cmdUp = &cobra.Command{
		Use:          "up",
		Short:        "Create a new Kubernetes cluster",
		Long:         ``,
		RunE:         runCmdUp,
		SilenceUsage: true,
	}

	upOpts = struct {
		skipWait     bool
		createBucket bool
		createKMSKey bool
		timeout      time.Duration
	}{}
)

func init() {
	RootCmd.AddCommand(cmdUp)
	bindSettingsFlags(cmdUp)
	cmdUp.Flags().BoolVar(&upOpts.skipWait, "skip-wait", false, "Don't wait for the Kubernetes API to become available")
	cmdUp.Flags().BoolVar(&upOpts.createBucket, "create-bucket", false, "Create the asset S3 bucket when it doesn't exist yet")
	cmdUp.Flags().BoolVar(&upOpts.createKMSKey, "create-kms-key", false, "Create a KMS key for this cluster when none is configured")
	cmdUp.Flags().DurationVar(&upOpts.timeout, "timeout", 30*time.Minute, "Time budget for launching the cluster and waiting for the API")
}

func runCmdUp(_ *cobra.Command, _ []string) error {
	if err := checkToolchain(context.Background()); err != nil {
		return err
	}

	c, err := newCluster()
	if err != nil {
		return err
	}

	if err := validateRequired(
		flag{"--s3-uri", c.Settings.S3URI},
	); err != nil {
		return err
	}

	if err := c.Preflight(cluster.PreflightOptions{
		CreateBucket: upOpts.createBucket,
		CreateKMSKey: upOpts.createKMSKey,
	}); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), upOpts.timeout)
	defer cancel()

	if err := c.EnsureDescriptor(ctx); err != nil {
		return err
	}

	if err := c.Render(ctx); err != nil {
		return err
	}

	if err := c.ValidateAssets(ctx); err != nil {
		return err
	}

	logger.Info("Creating AWS resources. Please wait. This may take a few minutes.")
	if err := c.Up(ctx, upOpts.skipWait); err != nil {
		return err
	}

	successMsg :=
		`Success! Your AWS resources have been created:

Cluster Name:	%s
API Endpoint:	https://%s

The containers that power your cluster are now being downloaded.
Access the cluster with:

    kubectl --kubeconfig=%s get nodes
`
	logger.Headingf(successMsg, c.Settings.ClusterName, c.Settings.ExternalDNSName, c.KubeconfigPath())
	return nil
}
