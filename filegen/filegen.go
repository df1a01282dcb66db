package filegen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kubernetes-incubator/kube-aws-up/filereader/texttemplate"
)

// CreateFileFromTemplate renders an embedded template and writes the result.
func CreateFileFromTemplate(outputFilePath string, templateOpts interface{}, fileTemplate []byte) error {
	rendered, err := texttemplate.RenderString(filepath.Base(outputFilePath), string(fileTemplate), templateOpts)
	if err != nil {
		return fmt.Errorf("error rendering template for %s: %v", outputFilePath, err)
	}
	return CreateFile(outputFilePath, rendered)
}

// CreateFile writes contents to a new file. The file is opened O_EXCL so an
// existing file is never clobbered.
func CreateFile(outputFilePath, contents string) error {
	dir := filepath.Dir(outputFilePath)
	if _, err := os.Stat(dir); err != nil && os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory: %v", err)
		}
	}

	out, err := os.OpenFile(outputFilePath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("error opening %s : %v", outputFilePath, err)
	}
	defer out.Close()

	if _, err := out.WriteString(contents); err != nil {
		return fmt.Errorf("error writing %s : %v", outputFilePath, err)
	}
	return nil
}
