package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errRegionRequired = errors.New("no region configured. Set it via --region, KUBE_AWS_UP_REGION or the settings file")

type flag struct {
	name string
	val  string
}

func validateRequired(required ...flag) error {
	var missing []string
	for _, req := range required {
		if req.val == "" {
			missing = append(missing, strconv.Quote(req.name))
		}
	}
	if len(missing) != 0 {
		return fmt.Errorf("Missing required flag(s): %s", strings.Join(missing, ", "))
	}
	return nil
}
