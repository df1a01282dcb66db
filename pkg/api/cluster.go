package api

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/kubernetes-incubator/kube-aws-up/netutil"
)

const (
	defaultKubernetesVersion = "v1.11.3"

	defaultControllerInstanceType = "t2.medium"
	defaultWorkerInstanceType     = "t2.medium"
	defaultEtcdInstanceType       = "t2.medium"
)

var clusterNameRegexp = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-:]*$`)

// ClusterSettings holds every parameter this tool manages on behalf of the
// external cluster-bootstrapping tool: the values that end up in the
// generated cluster descriptor plus the account-level inputs (profile,
// bucket, KMS key) used while provisioning.
type ClusterSettings struct {
	ClusterName     string `yaml:"clusterName,omitempty" mapstructure:"clusterName"`
	ExternalDNSName string `yaml:"externalDNSName,omitempty" mapstructure:"externalDNSName"`
	HostedZone      string `yaml:"hostedZone,omitempty" mapstructure:"hostedZone"`
	HostedZoneID    string `yaml:"hostedZoneId,omitempty" mapstructure:"hostedZoneId"`
	NoRecordSet     bool   `yaml:"noRecordSet,omitempty" mapstructure:"noRecordSet"`

	Profile           string   `yaml:"profile,omitempty" mapstructure:"profile"`
	Region            Region   `yaml:",inline" mapstructure:",squash"`
	AvailabilityZones []string `yaml:"availabilityZones,omitempty" mapstructure:"availabilityZones"`

	KeyName   string `yaml:"keyName,omitempty" mapstructure:"keyName"`
	KMSKeyID  string `yaml:"kmsKeyId,omitempty" mapstructure:"kmsKeyId"`
	KMSKeyARN string `yaml:"kmsKeyArn,omitempty" mapstructure:"kmsKeyArn"`
	S3URI     string `yaml:"s3Uri,omitempty" mapstructure:"s3Uri"`

	AmiID             string         `yaml:"amiId,omitempty" mapstructure:"amiId"`
	ReleaseChannel    ReleaseChannel `yaml:"releaseChannel,omitempty" mapstructure:"releaseChannel"`
	KubernetesVersion string         `yaml:"kubernetesVersion,omitempty" mapstructure:"kubernetesVersion"`

	ControllerCount          int    `yaml:"controllerCount,omitempty" mapstructure:"controllerCount"`
	ControllerInstanceType   string `yaml:"controllerInstanceType,omitempty" mapstructure:"controllerInstanceType"`
	ControllerRootVolumeSize int    `yaml:"controllerRootVolumeSize,omitempty" mapstructure:"controllerRootVolumeSize"`

	WorkerCount          int    `yaml:"workerCount,omitempty" mapstructure:"workerCount"`
	WorkerInstanceType   string `yaml:"workerInstanceType,omitempty" mapstructure:"workerInstanceType"`
	WorkerRootVolumeSize int    `yaml:"workerRootVolumeSize,omitempty" mapstructure:"workerRootVolumeSize"`

	EtcdCount        int    `yaml:"etcdCount,omitempty" mapstructure:"etcdCount"`
	EtcdInstanceType string `yaml:"etcdInstanceType,omitempty" mapstructure:"etcdInstanceType"`

	VPCCIDR      string `yaml:"vpcCIDR,omitempty" mapstructure:"vpcCIDR"`
	InstanceCIDR string `yaml:"instanceCIDR,omitempty" mapstructure:"instanceCIDR"`
}

// NewDefaultClusterSettings returns the settings used when neither the
// settings file, the environment nor flags say otherwise.
func NewDefaultClusterSettings() *ClusterSettings {
	return &ClusterSettings{
		ReleaseChannel:    DefaultReleaseChannel(),
		KubernetesVersion: defaultKubernetesVersion,

		ControllerCount:          1,
		ControllerInstanceType:   defaultControllerInstanceType,
		ControllerRootVolumeSize: 30,

		WorkerCount:          1,
		WorkerInstanceType:   defaultWorkerInstanceType,
		WorkerRootVolumeSize: 30,

		EtcdCount:        1,
		EtcdInstanceType: defaultEtcdInstanceType,

		VPCCIDR:      "10.0.0.0/16",
		InstanceCIDR: "10.0.0.0/24",
	}
}

// Validate checks everything that can be checked without talking to AWS.
// Live-account validation happens in the account package.
func (c *ClusterSettings) Validate() error {
	if c.ClusterName == "" {
		return fmt.Errorf("clusterName must be set")
	}
	if !clusterNameRegexp.MatchString(c.ClusterName) {
		return fmt.Errorf("clusterName %q is malformed. It must consist only of alphanumeric characters, colons, or hyphens", c.ClusterName)
	}

	if c.ExternalDNSName == "" {
		return fmt.Errorf("externalDNSName must be set")
	}

	if !c.NoRecordSet && c.HostedZone == "" && c.HostedZoneID == "" {
		return fmt.Errorf("either hostedZone, hostedZoneId or noRecordSet must be set")
	}
	if c.HostedZone != "" && !isSubdomain(c.ExternalDNSName, c.HostedZone) {
		return fmt.Errorf("externalDNSName %s is not a sub-domain of hosted zone %s", c.ExternalDNSName, c.HostedZone)
	}

	if c.Region.IsEmpty() {
		return fmt.Errorf("region must be set")
	}

	if err := c.ReleaseChannel.IsValid(); err != nil {
		return fmt.Errorf("invalid releaseChannel %s: %v", c.ReleaseChannel, err)
	}

	if _, err := semver.NewVersion(strings.TrimPrefix(c.KubernetesVersion, "v")); err != nil {
		return fmt.Errorf("kubernetesVersion %s is not a valid version: %v", c.KubernetesVersion, err)
	}

	if c.ControllerCount < 1 {
		return fmt.Errorf("controllerCount must be at least 1, got %d", c.ControllerCount)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("workerCount must be at least 1, got %d", c.WorkerCount)
	}
	if c.EtcdCount < 1 || c.EtcdCount%2 == 0 {
		return fmt.Errorf("etcdCount must be a positive odd number, got %d", c.EtcdCount)
	}

	if c.ControllerRootVolumeSize < 30 {
		return fmt.Errorf("controllerRootVolumeSize must be at least 30 GiB, got %d", c.ControllerRootVolumeSize)
	}
	if c.WorkerRootVolumeSize < 30 {
		return fmt.Errorf("workerRootVolumeSize must be at least 30 GiB, got %d", c.WorkerRootVolumeSize)
	}

	_, vpcNet, err := net.ParseCIDR(c.VPCCIDR)
	if err != nil {
		return fmt.Errorf("invalid vpcCIDR: %v", err)
	}
	_, instanceNet, err := net.ParseCIDR(c.InstanceCIDR)
	if err != nil {
		return fmt.Errorf("invalid instanceCIDR: %v", err)
	}
	if !netutil.CidrContains(vpcNet, instanceNet) {
		return fmt.Errorf("vpcCIDR (%s) does not contain instanceCIDR (%s)", c.VPCCIDR, c.InstanceCIDR)
	}

	if len(c.AvailabilityZones) > 1 && c.WorkerCount < len(c.AvailabilityZones) {
		return fmt.Errorf("workerCount (%d) must be at least the number of availability zones (%d)", c.WorkerCount, len(c.AvailabilityZones))
	}

	return nil
}

// WithTrailingDot appends the trailing dot Route53 uses for record names.
func WithTrailingDot(s string) string {
	if s == "" || strings.HasSuffix(s, ".") {
		return s
	}
	return s + "."
}

func isSubdomain(sub, parent string) bool {
	sub, parent = WithTrailingDot(sub), WithTrailingDot(parent)
	subParts, parentParts := strings.Split(sub, "."), strings.Split(parent, ".")

	if len(parentParts) > len(subParts) {
		return false
	}

	suffixes := subParts[len(subParts)-len(parentParts):]
	for i := range suffixes {
		if suffixes[i] != parentParts[i] {
			return false
		}
	}
	return true
}

// IsSubdomain reports whether sub is equal to or nested under parent,
// ignoring trailing dots.
func IsSubdomain(sub, parent string) bool {
	return isSubdomain(sub, parent)
}
