// Package settings resolves cluster parameters from, in rising precedence:
// built-in defaults, the settings file, environment variables and
// command-line flags.
package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/kubernetes-incubator/kube-aws-up/pkg/api"
)

const (
	// FileName is the settings file looked up in the search path, without
	// extension.
	FileName = "kube-aws-up"

	// EnvPrefix prefixes every environment variable read by this tool,
	// e.g. KUBE_AWS_UP_CLUSTER_NAME.
	EnvPrefix = "KUBE_AWS_UP"
)

// envKeys lists the settings that may come from the environment. Each entry
// is bound as EnvPrefix + "_" + upper-snake of the key.
var envKeys = []string{
	"clusterName",
	"externalDNSName",
	"hostedZone",
	"hostedZoneId",
	"profile",
	"region",
	"keyName",
	"kmsKeyId",
	"kmsKeyArn",
	"s3Uri",
	"amiId",
	"releaseChannel",
	"kubernetesVersion",
	"controllerCount",
	"controllerInstanceType",
	"workerCount",
	"workerInstanceType",
	"etcdCount",
	"etcdInstanceType",
}

// Load reads the settings file (an explicit path, or the first
// kube-aws-up.yaml found in the search path) and the environment, and merges
// them over the built-in defaults.
func Load(explicitPath string) (*api.ClusterSettings, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read settings file %s", explicitPath)
		}
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, "."+FileName))
		}
		if configDir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(configDir, FileName))
		}
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, errors.Wrap(err, "failed to read settings file")
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	for _, key := range envKeys {
		v.BindEnv(key, envName(key))
	}

	var overrides api.ClusterSettings
	if err := v.Unmarshal(&overrides); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}

	cfg := api.NewDefaultClusterSettings()
	if err := Merge(cfg, overrides); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge lays the non-zero fields of over on top of base.
func Merge(base *api.ClusterSettings, over api.ClusterSettings) error {
	if err := mergo.Merge(base, over, mergo.WithOverride); err != nil {
		return errors.Wrap(err, "failed to merge settings")
	}
	return nil
}

// envName maps a camelCase settings key to its environment variable,
// e.g. clusterName -> KUBE_AWS_UP_CLUSTER_NAME.
func envName(key string) string {
	isLower := func(i int) bool { return key[i] >= 'a' && key[i] <= 'z' }

	var b strings.Builder
	for i := 0; i < len(key); i++ {
		if key[i] >= 'A' && key[i] <= 'Z' && i > 0 && (isLower(i-1) || (i+1 < len(key) && isLower(i+1))) {
			b.WriteByte('_')
		}
		b.WriteByte(key[i])
	}
	return EnvPrefix + "_" + strings.ToUpper(b.String())
}
