package cmd

import (
	"fmt"
	"io/ioutil"

	"github.com/spf13/cobra"

	"github.com/kubernetes-incubator/kube-aws-up/diffutil"
	"github.com/kubernetes-incubator/kube-aws-up/logger"
)

var (
	cmdDiff = &cobra.Command{
		Use:          "diff",
		Short:        "Compare the cluster descriptor on disk against the resolved settings",
		Long:         ``,
		RunE:         runCmdDiff,
		SilenceUsage: true,
	}

	diffOpts = struct {
		context int
	}{}
)

type ExitError struct {
	msg  string
	Code int
}

func (e *ExitError) Error() string {
	return e.msg
}

func init() {
	RootCmd.AddCommand(cmdDiff)
	bindSettingsFlags(cmdDiff)
	cmdDiff.Flags().IntVarP(&diffOpts.context, "context", "C", 3, "output NUM lines of context around changes. Negative means everything")
}

func runCmdDiff(c *cobra.Command, _ []string) error {
	cl, err := newCluster()
	if err != nil {
		return err
	}

	current, err := ioutil.ReadFile(cl.DescriptorPath())
	if err != nil {
		return fmt.Errorf("failed to read cluster descriptor: %v", err)
	}

	desired, err := cl.PatchedDescriptor()
	if err != nil {
		return err
	}

	if !diffutil.HasChanges(string(current), desired) {
		logger.Info("No changes detected")
		return nil
	}

	logger.Infof("Detected changes in %s:\n%s", cl.DescriptorPath(), diffutil.Text(string(current), desired, diffOpts.context))

	c.SilenceErrors = true
	return &ExitError{fmt.Sprintf("Detected changes in %s", cl.DescriptorPath()), 2}
}
