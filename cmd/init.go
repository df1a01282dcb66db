package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/kubernetes-incubator/kube-aws-up/cluster"
	"github.com/kubernetes-incubator/kube-aws-up/logger"
)

var (
	cmdInit = &cobra.Command{
		Use:          "init",
		Short:        "Initialize the cluster descriptor",
		Long:         ``,
		RunE:         runCmdInit,
		SilenceUsage: true,
	}

	initOpts = struct {
		createBucket bool
		createKMSKey bool
	}{}
)

func init() {
	RootCmd.AddCommand(cmdInit)
	bindSettingsFlags(cmdInit)
	cmdInit.Flags().BoolVar(&initOpts.createBucket, "create-bucket", false, "Create the asset S3 bucket when it doesn't exist yet")
	cmdInit.Flags().BoolVar(&initOpts.createKMSKey, "create-kms-key", false, "Create a KMS key for this cluster when none is configured")
}

func runCmdInit(_ *cobra.Command, _ []string) error {
	c, err := newCluster()
	if err != nil {
		return err
	}

	cfg := c.Settings
	if err := validateRequired(
		flag{"--cluster-name", cfg.ClusterName},
		flag{"--external-dns-name", cfg.ExternalDNSName},
		flag{"--region", cfg.Region.Name},
		flag{"--key-name", cfg.KeyName},
	); err != nil {
		return err
	}
	if !cfg.NoRecordSet && cfg.HostedZone == "" && cfg.HostedZoneID == "" {
		return errors.New("Missing required flags: either --hosted-zone, --hosted-zone-id or --no-record-set is required")
	}

	if err := c.Preflight(cluster.PreflightOptions{
		CreateBucket: initOpts.createBucket,
		CreateKMSKey: initOpts.createKMSKey,
	}); err != nil {
		return err
	}

	if err := c.InitDescriptor(context.Background()); err != nil {
		return err
	}

	successMsg :=
		`Success! Created %s

Next steps:
1. (Optional) Edit %s to parameterize the cluster.
2. Use the "kube-aws-up render" command to render the cluster's credentials and stack templates.
`
	logger.Headingf(successMsg, c.DescriptorPath(), c.DescriptorPath())
	return nil
}
