package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

var (
	cmdStatus = &cobra.Command{
		Use:          "status",
		Short:        "Describe an existing Kubernetes cluster",
		Long:         ``,
		RunE:         runCmdStatus,
		SilenceUsage: true,
	}

	statusOpts = struct {
		output string
	}{}
)

func init() {
	RootCmd.AddCommand(cmdStatus)
	bindSettingsFlags(cmdStatus)
	cmdStatus.Flags().StringVarP(&statusOpts.output, "output", "o", "text", "Output format. One of: text, json")
}

func runCmdStatus(_ *cobra.Command, _ []string) error {
	c, err := newCluster()
	if err != nil {
		return err
	}

	if statusOpts.output == "json" {
		stack, nodes, err := c.StatusOutput(context.Background())
		if err != nil {
			return err
		}

		out := "{}"
		for _, kv := range []struct {
			path  string
			value interface{}
		}{
			{"clusterName", c.Settings.ClusterName},
			{"region", c.Settings.Region.Name},
			{"externalDNSName", c.Settings.ExternalDNSName},
			{"descriptor", c.DescriptorPath()},
			{"descriptorExists", c.DescriptorExists()},
			{"kubeconfig", c.KubeconfigPath()},
			{"stackStatus", strings.TrimSpace(stack)},
			{"nodes", strings.TrimSpace(nodes)},
		} {
			if out, err = sjson.Set(out, kv.path, kv.value); err != nil {
				return err
			}
		}
		fmt.Println(out)
		return nil
	}

	return c.Status(context.Background())
}
