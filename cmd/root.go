package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kubernetes-incubator/kube-aws-up/account"
	"github.com/kubernetes-incubator/kube-aws-up/cluster"
	"github.com/kubernetes-incubator/kube-aws-up/logger"
	"github.com/kubernetes-incubator/kube-aws-up/pkg/api"
	"github.com/kubernetes-incubator/kube-aws-up/settings"
)

var (
	RootCmd = &cobra.Command{
		Use:   "kube-aws-up",
		Short: "Provision and manage Kubernetes clusters on AWS",
		Long:  ``,
	}

	rootOpts = struct {
		settingsFile string
		workDir      string
		awsDebug     bool
	}{}

	// overrideOpts collects settings passed as flags; they win over the
	// settings file and the environment.
	overrideOpts = api.ClusterSettings{}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&rootOpts.settingsFile, "settings", "", "Path to the settings file. Defaults to kube-aws-up.yaml in the working directory or $HOME/.kube-aws-up")
	RootCmd.PersistentFlags().StringVar(&rootOpts.workDir, "work-dir", ".", "Directory holding the cluster descriptor and rendered assets")
	RootCmd.PersistentFlags().BoolVar(&rootOpts.awsDebug, "aws-debug", false, "Log debug information from aws-sdk-go library")
	RootCmd.PersistentFlags().BoolVar(&logger.Verbose, "verbose", false, "Enable verbose output")
	RootCmd.PersistentFlags().BoolVar(&logger.Silent, "silent", false, "Suppress output except for errors")
	RootCmd.PersistentFlags().BoolVar(&logger.Color, "color", false, "Colorize output")
}

// bindSettingsFlags registers the cluster parameter flags shared by the
// commands that resolve settings.
func bindSettingsFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&overrideOpts.ClusterName, "cluster-name", "", "The name of this cluster. This will be the name of the cloudformation stack")
	cmd.Flags().StringVar(&overrideOpts.ExternalDNSName, "external-dns-name", "", "The hostname that will route to the k8s API")
	cmd.Flags().StringVar(&overrideOpts.HostedZone, "hosted-zone", "", "The DNS domain whose Route53 hosted zone hosts the API record set")
	cmd.Flags().StringVar(&overrideOpts.HostedZoneID, "hosted-zone-id", "", "The hosted zone in which a Route53 record set for the k8s API endpoint is created")
	cmd.Flags().BoolVar(&overrideOpts.NoRecordSet, "no-record-set", false, "Don't manage a Route53 record set for the k8s API endpoint")
	cmd.Flags().StringVar(&overrideOpts.Profile, "profile", "", "The AWS shared-config profile to use")
	cmd.Flags().StringVar(&overrideOpts.Region.Name, "region", "", "The AWS region to deploy to")
	cmd.Flags().StringSliceVar(&overrideOpts.AvailabilityZones, "availability-zones", nil, "The AWS availability zones to deploy to. Defaults to the first available zone of the region")
	cmd.Flags().StringVar(&overrideOpts.KeyName, "key-name", "", "The AWS key-pair for ssh access to nodes")
	cmd.Flags().StringVar(&overrideOpts.KMSKeyID, "kms-key-id", "", "The ID, ARN or alias of the AWS KMS key for encrypting generated credentials")
	cmd.Flags().StringVar(&overrideOpts.S3URI, "s3-uri", "", "The S3 location for cluster assets, expressed as s3://<bucket>/path/to/dir")
	cmd.Flags().StringVar(&overrideOpts.AmiID, "ami-id", "", "The AMI ID to boot nodes from, overriding the release channel's default")
	cmd.Flags().IntVar(&overrideOpts.WorkerCount, "worker-count", 0, "Number of worker nodes")
	cmd.Flags().IntVar(&overrideOpts.ControllerCount, "controller-count", 0, "Number of controller nodes")
	cmd.Flags().IntVar(&overrideOpts.EtcdCount, "etcd-count", 0, "Number of etcd nodes")
	cmd.Flags().StringVar(&overrideOpts.WorkerInstanceType, "worker-instance-type", "", "EC2 instance type for worker nodes")
	cmd.Flags().StringVar(&overrideOpts.ControllerInstanceType, "controller-instance-type", "", "EC2 instance type for controller nodes")
	cmd.Flags().StringVar(&overrideOpts.EtcdInstanceType, "etcd-instance-type", "", "EC2 instance type for etcd nodes")
}

// loadSettings resolves the effective settings: defaults, then the settings
// file, then the environment, then flags.
func loadSettings() (*api.ClusterSettings, error) {
	cfg, err := settings.Load(rootOpts.settingsFile)
	if err != nil {
		return nil, err
	}
	if err := settings.Merge(cfg, overrideOpts); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newCluster builds the cluster driver from fully resolved, statically
// validated settings.
func newCluster() (*cluster.Cluster, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return cluster.New(cfg, rootOpts.workDir, rootOpts.awsDebug)
}

// newChecker builds an account checker without requiring complete cluster
// settings. Used by the list subcommands, which only need a region.
func newChecker() (*account.Checker, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}
	if cfg.Region.IsEmpty() {
		return nil, errRegionRequired
	}

	sess, err := account.NewSession(cfg.Region, cfg.Profile, rootOpts.awsDebug)
	if err != nil {
		return nil, err
	}
	return account.NewChecker(sess, cfg.Region), nil
}
