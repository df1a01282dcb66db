package settings

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubernetes-incubator/kube-aws-up/pkg/api"
)

func writeSettingsFile(t *testing.T, body string) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "settings")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, FileName+".yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "settings")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	cfg, err := Load("")
	require.NoError(t, err)
	if diff := cmp.Diff(api.NewDefaultClusterSettings(), cfg); diff != "" {
		t.Errorf("settings differ from the defaults: %s", diff)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeSettingsFile(t, `clusterName: test-cluster
region: us-west-1
workerCount: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test-cluster", cfg.ClusterName)
	assert.Equal(t, "us-west-1", cfg.Region.Name)
	assert.Equal(t, 3, cfg.WorkerCount)
	assert.Equal(t, 1, cfg.ControllerCount, "untouched settings keep their defaults")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeSettingsFile(t, `clusterName: from-file
workerCount: 3
`)

	os.Setenv("KUBE_AWS_UP_CLUSTER_NAME", "from-env")
	os.Setenv("KUBE_AWS_UP_WORKER_COUNT", "5")
	defer os.Unsetenv("KUBE_AWS_UP_CLUSTER_NAME")
	defer os.Unsetenv("KUBE_AWS_UP_WORKER_COUNT")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.ClusterName)
	assert.Equal(t, 5, cfg.WorkerCount)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load("/nonexistent/kube-aws-up.yaml")
	assert.Error(t, err)
}

func TestMergeSkipsZeroValues(t *testing.T) {
	base := api.NewDefaultClusterSettings()
	base.ClusterName = "base"

	over := api.ClusterSettings{WorkerCount: 7}
	require.NoError(t, Merge(base, over))

	assert.Equal(t, "base", base.ClusterName)
	assert.Equal(t, 7, base.WorkerCount)
	assert.Equal(t, "t2.medium", base.WorkerInstanceType)
}

func TestEnvName(t *testing.T) {
	tests := map[string]string{
		"clusterName":     "KUBE_AWS_UP_CLUSTER_NAME",
		"externalDNSName": "KUBE_AWS_UP_EXTERNAL_DNS_NAME",
		"hostedZoneId":    "KUBE_AWS_UP_HOSTED_ZONE_ID",
		"region":          "KUBE_AWS_UP_REGION",
		"s3Uri":           "KUBE_AWS_UP_S3_URI",
		"kmsKeyArn":       "KUBE_AWS_UP_KMS_KEY_ARN",
		"amiId":           "KUBE_AWS_UP_AMI_ID",
	}
	for key, expected := range tests {
		assert.Equal(t, expected, envName(key), "key %s", key)
	}
}
