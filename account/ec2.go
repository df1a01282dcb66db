package account

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/ec2"
)

// ListRegions returns the names of every region enabled for the account.
func (c *Checker) ListRegions() ([]string, error) {
	out, err := c.ec2.DescribeRegions(&ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, fmt.Errorf("error describing regions: %v", err)
	}

	names := make([]string, 0, len(out.Regions))
	for _, r := range out.Regions {
		names = append(names, aws.StringValue(r.RegionName))
	}
	return names, nil
}

// ValidateRegion ensures the configured region is one the account can use.
func (c *Checker) ValidateRegion(name string) error {
	regions, err := c.ListRegions()
	if err != nil {
		return err
	}

	for _, r := range regions {
		if r == name {
			return nil
		}
	}
	return fmt.Errorf("region %s is not available to this account. Available regions: %s", name, strings.Join(regions, ", "))
}

// AvailableZones returns the zones in the session's region that are in the
// `available` state.
func (c *Checker) AvailableZones() ([]string, error) {
	out, err := c.ec2.DescribeAvailabilityZones(&ec2.DescribeAvailabilityZonesInput{
		Filters: []*ec2.Filter{
			{
				Name:   aws.String("state"),
				Values: []*string{aws.String("available")},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error describing availability zones in %s: %v", c.region, err)
	}

	zones := make([]string, 0, len(out.AvailabilityZones))
	for _, az := range out.AvailabilityZones {
		zones = append(zones, aws.StringValue(az.ZoneName))
	}
	return zones, nil
}

// ValidateAvailabilityZones checks every requested zone against the zones
// actually available in the region.
func (c *Checker) ValidateAvailabilityZones(requested []string) error {
	available, err := c.AvailableZones()
	if err != nil {
		return err
	}

	availableSet := map[string]bool{}
	for _, az := range available {
		availableSet[az] = true
	}

	var unknown []string
	for _, az := range requested {
		if !availableSet[az] {
			unknown = append(unknown, az)
		}
	}
	if len(unknown) != 0 {
		return fmt.Errorf(
			"availability zone(s) %s not available in region %s. Available zones: %s",
			strings.Join(unknown, ", "), c.region, strings.Join(available, ", "),
		)
	}
	return nil
}

// DefaultAvailabilityZone picks the first available zone of the region,
// which is what the tool uses when the user specified none.
func (c *Checker) DefaultAvailabilityZone() (string, error) {
	available, err := c.AvailableZones()
	if err != nil {
		return "", err
	}
	if len(available) == 0 {
		return "", fmt.Errorf("no availability zones available in region %s", c.region)
	}
	return available[0], nil
}

// ListKeyPairs returns the names of every EC2 key pair in the region.
func (c *Checker) ListKeyPairs() ([]string, error) {
	out, err := c.ec2.DescribeKeyPairs(&ec2.DescribeKeyPairsInput{})
	if err != nil {
		return nil, fmt.Errorf("error describing key pairs: %v", err)
	}

	names := make([]string, 0, len(out.KeyPairs))
	for _, kp := range out.KeyPairs {
		names = append(names, aws.StringValue(kp.KeyName))
	}
	return names, nil
}

// ValidateKeyPair ensures the configured SSH key pair exists in the region.
func (c *Checker) ValidateKeyPair(name string) error {
	_, err := c.ec2.DescribeKeyPairs(&ec2.DescribeKeyPairsInput{
		KeyNames: []*string{aws.String(name)},
	})

	if err != nil {
		if awsErr, ok := err.(awserr.Error); ok {
			if awsErr.Code() == "InvalidKeyPair.NotFound" {
				return fmt.Errorf("key pair %s does not exist in region %s", name, c.region)
			}
		}
		return err
	}
	return nil
}
