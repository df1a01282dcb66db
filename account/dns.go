package account

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/route53"

	"github.com/kubernetes-incubator/kube-aws-up/pkg/api"
)

// HostedZone is the subset of a Route53 zone this tool cares about.
type HostedZone struct {
	ID   string
	Name string
}

// ListHostedZones returns every hosted zone in the account.
func (c *Checker) ListHostedZones() ([]HostedZone, error) {
	var zones []HostedZone
	var marker *string

	for {
		out, err := c.r53.ListHostedZones(&route53.ListHostedZonesInput{Marker: marker})
		if err != nil {
			return nil, fmt.Errorf("error listing hosted zones: %v", err)
		}
		for _, z := range out.HostedZones {
			zones = append(zones, HostedZone{
				ID:   aws.StringValue(z.Id),
				Name: aws.StringValue(z.Name),
			})
		}
		if !aws.BoolValue(out.IsTruncated) {
			break
		}
		marker = out.NextMarker
	}
	return zones, nil
}

// ResolveHostedZone turns a domain name into a hosted zone ID. The domain
// must match exactly one zone.
func (c *Checker) ResolveHostedZone(domain string) (string, error) {
	name := api.WithTrailingDot(domain)

	zonesResp, err := c.r53.ListHostedZonesByName(&route53.ListHostedZonesByNameInput{
		DNSName: aws.String(name),
	})
	if err != nil {
		return "", fmt.Errorf("error listing hosted zones for %s: %v", domain, err)
	}

	var matchingZone *route53.HostedZone
	for _, zone := range zonesResp.HostedZones {
		if aws.StringValue(zone.Name) == name {
			if matchingZone != nil {
				// Another match means the domain is ambiguous.
				return "", fmt.Errorf("multiple hosted zones found for DNS name %q", domain)
			}
			matchingZone = zone
		} else {
			/* Weird API semantics: once we see a zone which doesn't match the
			   name we've exhausted all zones which match it.
			   http://docs.aws.amazon.com/cli/latest/reference/route53/list-hosted-zones-by-name.html#options */
			break
		}
	}
	if matchingZone == nil {
		return "", fmt.Errorf("hosted zone %s does not exist", domain)
	}
	return aws.StringValue(matchingZone.Id), nil
}

// ValidateDNSConfig checks that the external DNS name belongs to the hosted
// zone and that no record set already claims it.
func (c *Checker) ValidateDNSConfig(externalDNSName, hostedZoneID string) error {
	hzOut, err := c.r53.GetHostedZone(&route53.GetHostedZoneInput{Id: aws.String(hostedZoneID)})
	if err != nil {
		return fmt.Errorf("error getting hosted zone %s: %v", hostedZoneID, err)
	}

	zoneName := aws.StringValue(hzOut.HostedZone.Name)
	if !api.IsSubdomain(externalDNSName, zoneName) {
		return fmt.Errorf("externalDNSName %s is not a sub-domain of hosted zone %s", externalDNSName, zoneName)
	}

	recordSetsResp, err := c.r53.ListResourceRecordSets(
		&route53.ListResourceRecordSetsInput{
			HostedZoneId: hzOut.HostedZone.Id,
		},
	)
	if err != nil {
		return fmt.Errorf("error listing record sets for hosted zone id = %s: %v", hostedZoneID, err)
	}

	for _, recordSet := range recordSetsResp.ResourceRecordSets {
		if aws.StringValue(recordSet.Name) == api.WithTrailingDot(externalDNSName) {
			return fmt.Errorf(
				"RecordSet for %q already exists in hosted zone %q",
				externalDNSName,
				zoneName,
			)
		}
	}

	return nil
}
