// Package toolchain locates and drives the external binaries this tool
// orchestrates: the cluster-bootstrapping tool and the Kubernetes client.
package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"

	"github.com/kubernetes-incubator/kube-aws-up/logger"
)

// Tool is an external binary with a minimum supported version.
type Tool struct {
	// Name is the binary looked up in PATH unless Path overrides it.
	Name string
	// Path, when set, is used verbatim instead of a PATH lookup.
	Path string
	// MinVersion is the oldest version this tool is known to work with.
	MinVersion string
	// VersionArgs invokes the tool's version output.
	VersionArgs []string
	// Description explains what the tool is used for, shown by doctor.
	Description string
	// InstallURL points at installation instructions, shown by doctor.
	InstallURL string
}

// Bootstrapper is the external cluster-bootstrapping tool that renders,
// validates and launches the CloudFormation stacks.
func Bootstrapper() Tool {
	return Tool{
		Name:        "kube-aws",
		MinVersion:  "0.9.8",
		VersionArgs: []string{"version"},
		Description: "Renders, validates and launches the cluster's CloudFormation stacks",
		InstallURL:  "https://github.com/kubernetes-incubator/kube-aws/releases",
	}
}

// Kubectl is the Kubernetes client used to wait for and inspect the cluster.
func Kubectl() Tool {
	return Tool{
		Name:        "kubectl",
		MinVersion:  "1.9.0",
		VersionArgs: []string{"version", "--client", "--short"},
		Description: "Talks to the Kubernetes API of the launched cluster",
		InstallURL:  "https://kubernetes.io/docs/tasks/tools/",
	}
}

func (t Tool) binary() string {
	if t.Path != "" {
		return t.Path
	}
	return t.Name
}

// Lookup resolves the tool's binary and returns its absolute path.
func (t Tool) Lookup() (string, error) {
	path, err := exec.LookPath(t.binary())
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH. %s. See %s", t.binary(), t.Description, t.InstallURL)
	}
	return path, nil
}

var versionRegexp = regexp.MustCompile(`v?(\d+\.\d+\.\d+[\w.+-]*)`)

// Version runs the tool's version subcommand and parses the first version
// number out of its output.
func (t Tool) Version(ctx context.Context) (*semver.Version, error) {
	out, err := exec.CommandContext(ctx, t.binary(), t.VersionArgs...).Output()
	if err != nil {
		return nil, errors.Wrapf(err, "failed running %s %s", t.binary(), strings.Join(t.VersionArgs, " "))
	}
	return parseVersionOutput(string(out))
}

// CheckVersion enforces the tool's minimum supported version.
func (t Tool) CheckVersion(ctx context.Context) error {
	v, err := t.Version(ctx)
	if err != nil {
		return err
	}

	constraint, err := semver.NewConstraint(fmt.Sprintf(">= %s", t.MinVersion))
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%s %s is older than the minimum supported version %s", t.binary(), v, t.MinVersion)
	}
	return nil
}

func parseVersionOutput(out string) (*semver.Version, error) {
	m := versionRegexp.FindStringSubmatch(out)
	if m == nil {
		return nil, fmt.Errorf("no version number found in %q", strings.TrimSpace(out))
	}
	v, err := semver.NewVersion(m[1])
	if err != nil {
		return nil, fmt.Errorf("failed to parse version %q: %v", m[1], err)
	}
	return v, nil
}

// Runner executes tools inside the cluster workspace, streaming their output
// through the logger.
type Runner struct {
	// Dir is the working directory holding the cluster descriptor.
	Dir string
	// Env entries are appended to the inherited environment.
	Env []string
}

// Run executes the tool and streams stdout/stderr as it runs.
func (r *Runner) Run(ctx context.Context, t Tool, args ...string) error {
	logger.Debugf("exec: %s %s", t.binary(), strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, t.binary(), args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), r.Env...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = logger.Writer(logger.StdErrOutput)

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s %s failed", t.binary(), strings.Join(args, " "))
	}
	return nil
}

// Output executes the tool and captures stdout, surfacing stderr in the
// error when the tool fails.
func (r *Runner) Output(ctx context.Context, t Tool, args ...string) (string, error) {
	logger.Debugf("exec: %s %s", t.binary(), strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.binary(), args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), r.Env...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "%s %s failed: %s", t.binary(), strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
