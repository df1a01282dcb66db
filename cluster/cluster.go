// Package cluster sequences the provisioning workflow: validate parameters
// against the live account, drive the external bootstrapping tool, and patch
// the cluster descriptor it generates.
package cluster

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/kubernetes-incubator/kube-aws-up/account"
	"github.com/kubernetes-incubator/kube-aws-up/logger"
	"github.com/kubernetes-incubator/kube-aws-up/pkg/api"
	"github.com/kubernetes-incubator/kube-aws-up/toolchain"
)

const (
	// DescriptorFile is the cluster descriptor generated and consumed by
	// the bootstrapping tool, relative to the workspace.
	DescriptorFile = "cluster.yaml"

	// KubeconfigFile is rendered by the bootstrapping tool next to the
	// descriptor.
	KubeconfigFile = "kubeconfig"

	credentialsDir = "credentials"
)

// Cluster drives one cluster workspace: a directory holding the descriptor
// and the assets rendered for it.
type Cluster struct {
	Settings *api.ClusterSettings
	Checker  *account.Checker
	Runner   *toolchain.Runner

	// Bootstrapper and Kubectl are the external tools driven by the
	// workflow. Fields so tests can substitute a harmless binary.
	Bootstrapper toolchain.Tool
	Kubectl      toolchain.Tool

	workDir string
}

func New(cfg *api.ClusterSettings, workDir string, awsDebug bool) (*Cluster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sess, err := account.NewSession(cfg.Region, cfg.Profile, awsDebug)
	if err != nil {
		return nil, err
	}

	return &Cluster{
		Settings:     cfg,
		Checker:      account.NewChecker(sess, cfg.Region),
		Runner:       &toolchain.Runner{Dir: workDir},
		Bootstrapper: toolchain.Bootstrapper(),
		Kubectl:      toolchain.Kubectl(),
		workDir:      workDir,
	}, nil
}

func (c *Cluster) DescriptorPath() string {
	return filepath.Join(c.workDir, DescriptorFile)
}

func (c *Cluster) KubeconfigPath() string {
	return filepath.Join(c.workDir, KubeconfigFile)
}

func (c *Cluster) DescriptorExists() bool {
	_, err := os.Stat(c.DescriptorPath())
	return err == nil
}

// PreflightOptions control which missing account resources get created
// rather than reported as errors.
type PreflightOptions struct {
	CreateBucket bool
	CreateKMSKey bool
}

// Preflight runs the whole validation catalogue against the live account,
// filling defaults as it goes: the availability zone when none was given,
// the hosted zone ID resolved from the domain, and the KMS key ARN.
func (c *Cluster) Preflight(opts PreflightOptions) error {
	cfg := c.Settings

	identity, err := c.Checker.CallerIdentity()
	if err != nil {
		return err
	}
	logger.Debugf("validating against AWS account:\n%s", identity)

	if err := c.Checker.ValidateRegion(cfg.Region.Name); err != nil {
		return err
	}

	if len(cfg.AvailabilityZones) == 0 {
		az, err := c.Checker.DefaultAvailabilityZone()
		if err != nil {
			return err
		}
		logger.Infof("no availability zone configured, using %s", az)
		cfg.AvailabilityZones = []string{az}
	} else if err := c.Checker.ValidateAvailabilityZones(cfg.AvailabilityZones); err != nil {
		return err
	}

	if cfg.KeyName != "" {
		if err := c.Checker.ValidateKeyPair(cfg.KeyName); err != nil {
			return err
		}
	}

	if !cfg.NoRecordSet {
		if cfg.HostedZoneID == "" {
			id, err := c.Checker.ResolveHostedZone(cfg.HostedZone)
			if err != nil {
				return err
			}
			cfg.HostedZoneID = id
		}
		if err := c.Checker.ValidateDNSConfig(cfg.ExternalDNSName, cfg.HostedZoneID); err != nil {
			return err
		}
	}

	if cfg.S3URI != "" {
		uri, err := api.S3URIFromString(cfg.S3URI)
		if err != nil {
			return err
		}
		if opts.CreateBucket {
			if err := c.Checker.CreateBucket(uri.Bucket()); err != nil {
				return err
			}
		}
		if err := c.Checker.ValidateBucket(uri.Bucket()); err != nil {
			return err
		}
	}

	if cfg.KMSKeyARN == "" {
		switch {
		case cfg.KMSKeyID != "":
			arn, err := c.Checker.ResolveKMSKey(cfg.KMSKeyID)
			if err != nil {
				return err
			}
			cfg.KMSKeyARN = arn
		case opts.CreateKMSKey:
			arn, err := c.Checker.CreateKMSKey(cfg.ClusterName)
			if err != nil {
				return err
			}
			logger.Infof("created KMS key %s", arn)
			cfg.KMSKeyARN = arn
		default:
			return errors.New("no KMS key configured. Set kmsKeyId/kmsKeyArn or pass --create-kms-key")
		}
	} else if _, err := c.Checker.ResolveKMSKey(cfg.KMSKeyARN); err != nil {
		return err
	}

	return nil
}

// InitDescriptor runs the bootstrapping tool's init and patches the
// generated descriptor with the settings init has no flags for.
func (c *Cluster) InitDescriptor(ctx context.Context) error {
	if c.DescriptorExists() {
		return fmt.Errorf("%s already exists. Remove it first to reinitialize the cluster", c.DescriptorPath())
	}

	cfg := c.Settings

	args := []string{
		"init",
		"--cluster-name", cfg.ClusterName,
		"--external-dns-name", cfg.ExternalDNSName,
		"--region", cfg.Region.Name,
		"--availability-zone", cfg.AvailabilityZones[0],
		"--key-name", cfg.KeyName,
		"--kms-key-arn", cfg.KMSKeyARN,
	}
	if cfg.NoRecordSet {
		args = append(args, "--no-record-set")
	} else {
		args = append(args, "--hosted-zone-id", cfg.HostedZoneID)
	}
	if cfg.AmiID != "" {
		args = append(args, "--ami-id", cfg.AmiID)
	}

	if err := c.Runner.Run(ctx, c.Bootstrapper, args...); err != nil {
		return err
	}

	return c.PatchDescriptor()
}

// EnsureDescriptor initializes the descriptor when missing. An existing
// descriptor is kept but re-patched so settings changes still reach it.
func (c *Cluster) EnsureDescriptor(ctx context.Context) error {
	if !c.DescriptorExists() {
		logger.Infof("no %s found, initializing the cluster descriptor", DescriptorFile)
		return c.InitDescriptor(ctx)
	}

	logger.Infof("reusing existing %s", DescriptorFile)
	return c.PatchDescriptor()
}

// Render renders credentials and stack templates through the bootstrapping
// tool. A CA is generated unless the workspace already carries one.
func (c *Cluster) Render(ctx context.Context) error {
	tool := c.Bootstrapper

	credentialArgs := []string{"render", "credentials"}
	if _, err := os.Stat(filepath.Join(c.workDir, credentialsDir, "ca-key.pem")); os.IsNotExist(err) {
		credentialArgs = append(credentialArgs, "--generate-ca")
	}
	if err := c.Runner.Run(ctx, tool, credentialArgs...); err != nil {
		return err
	}

	return c.Runner.Run(ctx, tool, "render", "stack")
}

// ValidateAssets asks the bootstrapping tool to validate the rendered
// stack against CloudFormation.
func (c *Cluster) ValidateAssets(ctx context.Context) error {
	return c.Runner.Run(ctx, c.Bootstrapper, "validate", "--s3-uri", c.Settings.S3URI)
}

// Up launches the cluster and, unless skipWait is set, blocks until the
// Kubernetes API answers.
func (c *Cluster) Up(ctx context.Context, skipWait bool) error {
	if err := c.Runner.Run(ctx, c.Bootstrapper, "up", "--s3-uri", c.Settings.S3URI); err != nil {
		return err
	}

	if skipWait {
		return nil
	}

	logger.Info("waiting for the Kubernetes API to become available...")
	if err := c.Runner.WaitForAPI(ctx, c.KubeconfigPath()); err != nil {
		return err
	}
	logger.Info("Kubernetes API is up")
	return nil
}

// Destroy tears the cluster down through the bootstrapping tool.
func (c *Cluster) Destroy(ctx context.Context) error {
	return c.Runner.Run(ctx, c.Bootstrapper, "destroy")
}

// CleanAssets empties the cluster's prefix of the asset bucket. The
// bootstrapping tool uploads under <s3-uri>/kube-aws/clusters/<name>/.
func (c *Cluster) CleanAssets() error {
	if c.Settings.S3URI == "" {
		return errors.New("no s3Uri configured, nothing to clean")
	}
	uri, err := api.S3URIFromString(c.Settings.S3URI)
	if err != nil {
		return err
	}

	prefix := strings.Join(append(uri.PathComponents(), "kube-aws", "clusters", c.Settings.ClusterName), "/") + "/"
	deleted, err := c.Checker.EmptyPrefix(uri.Bucket(), prefix)
	if err != nil {
		return err
	}
	logger.Infof("deleted %d cluster asset object(s) under s3://%s/%s", deleted, uri.Bucket(), prefix)
	return nil
}

// Status prints the bootstrapping tool's view of the cluster followed by the
// node list when the API is reachable.
func (c *Cluster) Status(ctx context.Context) error {
	if err := c.Runner.Run(ctx, c.Bootstrapper, "status"); err != nil {
		return err
	}

	if _, err := os.Stat(c.KubeconfigPath()); err == nil {
		return c.Runner.Run(ctx, c.Kubectl, "--kubeconfig", c.KubeconfigPath(), "get", "nodes", "-o", "wide")
	}
	return nil
}

// StatusOutput captures the same state Status streams, for machine-readable
// assembly. The node list is empty when no kubeconfig has been rendered yet.
func (c *Cluster) StatusOutput(ctx context.Context) (stack, nodes string, err error) {
	stack, err = c.Runner.Output(ctx, c.Bootstrapper, "status")
	if err != nil {
		return "", "", err
	}

	if _, statErr := os.Stat(c.KubeconfigPath()); statErr == nil {
		nodes, err = c.Runner.Output(ctx, c.Kubectl, "--kubeconfig", c.KubeconfigPath(), "get", "nodes", "-o", "wide")
		if err != nil {
			return "", "", err
		}
	}
	return stack, nodes, nil
}
