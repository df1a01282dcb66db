package cluster

import (
	"github.com/kubernetes-incubator/kube-aws-up/clusteryaml"
	"github.com/kubernetes-incubator/kube-aws-up/fingerprint"
	"github.com/kubernetes-incubator/kube-aws-up/logger"
	"github.com/kubernetes-incubator/kube-aws-up/pkg/api"
)

// descriptorPatches maps settings onto the top-level descriptor keys the
// bootstrapping tool's init subcommand has no flags for. The generated
// descriptor carries most of them as commented-out defaults, which SetKey
// uncomments in place.
func descriptorPatches(cfg *api.ClusterSettings) []struct {
	key   string
	value interface{}
} {
	return []struct {
		key   string
		value interface{}
	}{
		{"releaseChannel", string(cfg.ReleaseChannel)},
		{"controllerCount", cfg.ControllerCount},
		{"controllerInstanceType", cfg.ControllerInstanceType},
		{"controllerRootVolumeSize", cfg.ControllerRootVolumeSize},
		{"workerCount", cfg.WorkerCount},
		{"workerInstanceType", cfg.WorkerInstanceType},
		{"workerRootVolumeSize", cfg.WorkerRootVolumeSize},
		{"etcdCount", cfg.EtcdCount},
		{"etcdInstanceType", cfg.EtcdInstanceType},
		{"vpcCIDR", cfg.VPCCIDR},
		{"instanceCIDR", cfg.InstanceCIDR},
	}
}

// PatchDescriptor applies the settings-derived edits to the on-disk
// descriptor. All edits are applied in memory first, so the file is only
// rewritten when every edit succeeded.
func (c *Cluster) PatchDescriptor() error {
	doc, err := clusteryaml.Load(c.DescriptorPath())
	if err != nil {
		return err
	}

	if err := applyPatches(doc, c.Settings); err != nil {
		return err
	}

	if err := doc.Save(); err != nil {
		return err
	}
	logger.Debugf("descriptor fingerprint: %s", fingerprint.SHA256(doc.String()))
	return nil
}

// PatchedDescriptor returns what the on-disk descriptor would look like
// after patching, without touching the file. Used by the diff command.
func (c *Cluster) PatchedDescriptor() (string, error) {
	doc, err := clusteryaml.Load(c.DescriptorPath())
	if err != nil {
		return "", err
	}

	if err := applyPatches(doc, c.Settings); err != nil {
		return "", err
	}

	return doc.String(), nil
}

// SetDescriptorPath sets one dotted path in the descriptor, the escape
// hatch behind the --set flag.
func (c *Cluster) SetDescriptorPath(path, value string) error {
	doc, err := clusteryaml.Load(c.DescriptorPath())
	if err != nil {
		return err
	}

	if err := doc.SetPath(path, value); err != nil {
		return err
	}

	return doc.Save()
}

func applyPatches(doc *clusteryaml.Document, cfg *api.ClusterSettings) error {
	for _, p := range descriptorPatches(cfg) {
		if err := doc.SetKey(p.key, p.value); err != nil {
			return err
		}
	}
	return nil
}
