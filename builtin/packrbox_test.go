package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubernetes-incubator/kube-aws-up/filereader/texttemplate"
	"github.com/kubernetes-incubator/kube-aws-up/pkg/api"
)

func TestSettingsTemplateRenders(t *testing.T) {
	raw := String(SettingsTmplFile)
	require.NotEmpty(t, raw)

	cfg := api.NewDefaultClusterSettings()
	cfg.ClusterName = "test-cluster"
	cfg.ExternalDNSName = "k8s.staging.example.com"
	cfg.HostedZone = "staging.example.com"
	cfg.Region = api.RegionForName("us-west-1")
	cfg.AvailabilityZones = []string{"us-west-1a"}

	out, err := texttemplate.RenderString(SettingsTmplFile, raw, cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "clusterName: test-cluster")
	assert.Contains(t, out, "region: us-west-1")
	assert.Contains(t, out, "hostedZone: staging.example.com")
	assert.Contains(t, out, "  - us-west-1a")
	assert.NotContains(t, out, "hostedZoneId:", "empty optional settings stay out of the file")
}
