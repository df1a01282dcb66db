package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kubernetes-incubator/kube-aws-up/builtin"
	"github.com/kubernetes-incubator/kube-aws-up/filegen"
	"github.com/kubernetes-incubator/kube-aws-up/filereader/texttemplate"
	"github.com/kubernetes-incubator/kube-aws-up/logger"
	"github.com/kubernetes-incubator/kube-aws-up/settings"
)

var (
	cmdConfigure = &cobra.Command{
		Use:          "configure",
		Short:        "Write an annotated settings file from the resolved settings",
		Long:         ``,
		RunE:         runCmdConfigure,
		SilenceUsage: true,
	}

	configureOpts = struct {
		output   string
		template string
	}{}
)

func init() {
	RootCmd.AddCommand(cmdConfigure)
	bindSettingsFlags(cmdConfigure)
	cmdConfigure.Flags().StringVarP(&configureOpts.output, "output", "o", settings.FileName+".yaml", "Path of the settings file to write")
	cmdConfigure.Flags().StringVar(&configureOpts.template, "template", "", "Render a custom template file instead of the built-in one")
}

func runCmdConfigure(_ *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	if configureOpts.template != "" {
		rendered, err := texttemplate.GetString(configureOpts.template, cfg)
		if err != nil {
			return err
		}
		if err := filegen.CreateFile(configureOpts.output, rendered); err != nil {
			return err
		}
		logger.Infof("Success! Wrote %s from %s.", configureOpts.output, configureOpts.template)
		return nil
	}

	if err := filegen.CreateFileFromTemplate(configureOpts.output, cfg, builtin.Bytes(builtin.SettingsTmplFile)); err != nil {
		return err
	}

	logger.Infof("Success! Wrote %s. Flags and KUBE_AWS_UP_* environment variables still take precedence over it.", configureOpts.output)
	return nil
}
