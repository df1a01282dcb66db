package api

import (
	"fmt"
)

// Region is an AWS region chosen for a cluster deployment.
type Region struct {
	Name string `yaml:"region,omitempty" mapstructure:"region"`
}

func RegionForName(name string) Region {
	return Region{
		Name: name,
	}
}

func (r Region) PrivateDomainName() string {
	if r.Name == "us-east-1" {
		return "ec2.internal"
	}
	return fmt.Sprintf("%s.compute.internal", r.Name)
}

func (r Region) PublicComputeDomainName() string {
	return fmt.Sprintf("ec2.%s.amazonaws.com", r.Name)
}

func (r Region) IsEmpty() bool {
	return r.Name == ""
}

func (r Region) IsGovcloud() bool {
	return r.Name == "us-gov-west-1" || r.Name == "us-gov-east-1"
}

func (r Region) String() string {
	return r.Name
}
