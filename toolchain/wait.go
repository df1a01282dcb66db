package toolchain

import (
	"context"
	"fmt"
	"time"

	"github.com/kubernetes-incubator/kube-aws-up/logger"
)

const apiPollInterval = 10 * time.Second

// WaitForAPI polls the Kubernetes API through kubectl until the API server
// answers or the context runs out. kubeconfig points at the credentials the
// bootstrapping tool rendered.
func (r *Runner) WaitForAPI(ctx context.Context, kubeconfig string) error {
	kubectl := Kubectl()

	for {
		_, err := r.Output(ctx, kubectl, "--kubeconfig", kubeconfig, "version", "--short")
		if err == nil {
			return nil
		}
		logger.Debugf("API not ready yet: %v", err)

		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for the Kubernetes API: %v", ctx.Err())
		case <-time.After(apiPollInterval):
		}
	}
}
