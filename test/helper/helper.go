package helper

import (
	"io/ioutil"
	"os"
	"path/filepath"
)

// WithTempWorkspace runs fn inside a temporary directory seeded with the
// given cluster descriptor, cleaning up afterwards.
func WithTempWorkspace(descriptor string, fn func(dir string)) {
	dir, err := ioutil.TempDir("", "kube-aws-up-test")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	if descriptor != "" {
		if err := ioutil.WriteFile(filepath.Join(dir, "cluster.yaml"), []byte(descriptor), 0600); err != nil {
			panic(err)
		}
	}

	fn(dir)
}
