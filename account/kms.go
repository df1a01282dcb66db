package account

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/kms"

	"github.com/kubernetes-incubator/kube-aws-up/logger"
)

// KMSAlias pairs a key alias with the key it points at.
type KMSAlias struct {
	Alias    string
	TargetID string
}

// ListKMSAliases returns every KMS key alias in the region.
func (c *Checker) ListKMSAliases() ([]KMSAlias, error) {
	var aliases []KMSAlias
	var marker *string

	for {
		out, err := c.kms.ListAliases(&kms.ListAliasesInput{Marker: marker})
		if err != nil {
			return nil, fmt.Errorf("error listing KMS aliases: %v", err)
		}
		for _, a := range out.Aliases {
			aliases = append(aliases, KMSAlias{
				Alias:    aws.StringValue(a.AliasName),
				TargetID: aws.StringValue(a.TargetKeyId),
			})
		}
		if !aws.BoolValue(out.Truncated) {
			break
		}
		marker = out.NextMarker
	}
	return aliases, nil
}

// ResolveKMSKey accepts a key ID, a full ARN or an alias and returns the
// key's ARN, verifying the key exists and is enabled.
func (c *Checker) ResolveKMSKey(keyID string) (string, error) {
	out, err := c.kms.DescribeKey(&kms.DescribeKeyInput{
		KeyId: aws.String(keyID),
	})
	if err != nil {
		if awsErr, ok := err.(awserr.Error); ok && awsErr.Code() == kms.ErrCodeNotFoundException {
			return "", fmt.Errorf("KMS key %s does not exist in region %s. Create one or pass --create-kms-key", keyID, c.region)
		}
		return "", fmt.Errorf("error describing KMS key %s: %v", keyID, err)
	}

	meta := out.KeyMetadata
	if !aws.BoolValue(meta.Enabled) {
		return "", fmt.Errorf("KMS key %s exists but is disabled", keyID)
	}
	return aws.StringValue(meta.Arn), nil
}

// CreateKMSKey creates a key for encrypting the cluster's generated
// credentials and aliases it after the cluster.
func (c *Checker) CreateKMSKey(clusterName string) (string, error) {
	out, err := c.kms.CreateKey(&kms.CreateKeyInput{
		Description: aws.String(fmt.Sprintf("kube-aws assets for cluster %s", clusterName)),
	})
	if err != nil {
		return "", fmt.Errorf("error creating KMS key: %v", err)
	}

	arn := aws.StringValue(out.KeyMetadata.Arn)

	if _, err := c.kms.CreateAlias(&kms.CreateAliasInput{
		AliasName:   aws.String(fmt.Sprintf("alias/%s", clusterName)),
		TargetKeyId: out.KeyMetadata.KeyId,
	}); err != nil {
		// The key is usable without the alias.
		logger.Warnf("created KMS key %s but failed to alias it: %v", arn, err)
	}

	return arn, nil
}
