package diffutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const docA = `clusterName: test-cluster
externalDNSName: k8s.example.com
workerCount: 1
workerInstanceType: t2.medium
etcdCount: 1
vpcCIDR: 10.0.0.0/16
`

const docB = `clusterName: test-cluster
externalDNSName: k8s.example.com
workerCount: 3
workerInstanceType: t2.medium
etcdCount: 1
vpcCIDR: 10.0.0.0/16
`

func TestHasChanges(t *testing.T) {
	assert.False(t, HasChanges(docA, docA))
	assert.True(t, HasChanges(docA, docB))
}

func TestTextShowsBothSides(t *testing.T) {
	out := Text(docA, docB, -1)
	assert.Contains(t, out, "workerCount: 1")
	assert.Contains(t, out, "workerCount: 3")
	assert.Contains(t, out, "clusterName: test-cluster")
}

func TestTextElidesDistantContext(t *testing.T) {
	out := Text(docA, docB, 1)
	assert.Contains(t, out, "workerCount: 1")
	assert.Contains(t, out, "workerCount: 3")
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, "vpcCIDR", "lines more than one line from the change are elided")
}

func TestTextEqualDocumentsWithZeroContext(t *testing.T) {
	out := Text(docA, docA, 0)
	assert.Equal(t, "...", strings.TrimSpace(out))
}
