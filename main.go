package main

import (
	"os"

	"github.com/kubernetes-incubator/kube-aws-up/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*cmd.ExitError); ok {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
