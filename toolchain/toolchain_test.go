package toolchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersionOutput(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected string
	}{
		{"bootstrapper", "kube-aws version v0.9.8\n", "0.9.8"},
		{"kubectl short", "Client Version: v1.14.2\n", "1.14.2"},
		{"bare version", "0.14.3", "0.14.3"},
		{"pre-release", "kube-aws version v0.13.0-rc.1\n", "0.13.0-rc.1"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v, err := parseVersionOutput(test.output)
			require.NoError(t, err)
			assert.Equal(t, test.expected, v.String())
		})
	}

	_, err := parseVersionOutput("command not found\n")
	assert.Error(t, err)
}

func TestVersionAndCheckVersion(t *testing.T) {
	// echo stands in for a real tool and prints its own "version output".
	tool := Tool{
		Name:        "echo",
		MinVersion:  "1.0.0",
		VersionArgs: []string{"sometool version v1.2.3"},
	}

	v, err := tool.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", v.String())

	assert.NoError(t, tool.CheckVersion(context.Background()))

	tool.MinVersion = "2.0.0"
	err = tool.CheckVersion(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "older than the minimum supported version")
}

func TestLookupMissingToolNamesInstallURL(t *testing.T) {
	tool := Tool{
		Name:        "definitely-not-installed-anywhere",
		Description: "Does nothing",
		InstallURL:  "https://example.com/install",
	}
	_, err := tool.Lookup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "https://example.com/install")
}

func TestRunnerOutput(t *testing.T) {
	r := &Runner{}
	out, err := r.Output(context.Background(), Tool{Name: "echo"}, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}
