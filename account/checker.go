// Package account validates user-supplied cluster parameters against live
// AWS account state: credentials, regions, availability zones, key pairs,
// hosted zones, S3 buckets and KMS keys.
package account

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/kms"
	"github.com/aws/aws-sdk-go/service/route53"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/sts"

	"github.com/kubernetes-incubator/kube-aws-up/pkg/api"
)

type ec2Service interface {
	DescribeRegions(*ec2.DescribeRegionsInput) (*ec2.DescribeRegionsOutput, error)
	DescribeAvailabilityZones(*ec2.DescribeAvailabilityZonesInput) (*ec2.DescribeAvailabilityZonesOutput, error)
	DescribeKeyPairs(*ec2.DescribeKeyPairsInput) (*ec2.DescribeKeyPairsOutput, error)
}

type r53Service interface {
	ListHostedZones(*route53.ListHostedZonesInput) (*route53.ListHostedZonesOutput, error)
	ListHostedZonesByName(*route53.ListHostedZonesByNameInput) (*route53.ListHostedZonesByNameOutput, error)
	GetHostedZone(*route53.GetHostedZoneInput) (*route53.GetHostedZoneOutput, error)
	ListResourceRecordSets(*route53.ListResourceRecordSetsInput) (*route53.ListResourceRecordSetsOutput, error)
}

type s3Service interface {
	HeadBucket(*s3.HeadBucketInput) (*s3.HeadBucketOutput, error)
	GetBucketLocation(*s3.GetBucketLocationInput) (*s3.GetBucketLocationOutput, error)
	CreateBucket(*s3.CreateBucketInput) (*s3.CreateBucketOutput, error)
	PutBucketVersioning(*s3.PutBucketVersioningInput) (*s3.PutBucketVersioningOutput, error)
	ListBuckets(*s3.ListBucketsInput) (*s3.ListBucketsOutput, error)
	ListObjectsV2(*s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error)
	DeleteObjects(*s3.DeleteObjectsInput) (*s3.DeleteObjectsOutput, error)
}

type kmsService interface {
	DescribeKey(*kms.DescribeKeyInput) (*kms.DescribeKeyOutput, error)
	CreateKey(*kms.CreateKeyInput) (*kms.CreateKeyOutput, error)
	CreateAlias(*kms.CreateAliasInput) (*kms.CreateAliasOutput, error)
	ListAliases(*kms.ListAliasesInput) (*kms.ListAliasesOutput, error)
}

type stsService interface {
	GetCallerIdentity(*sts.GetCallerIdentityInput) (*sts.GetCallerIdentityOutput, error)
}

// Checker runs the validation catalogue against a single region of a single
// AWS account. The service fields are interfaces so tests can substitute
// fakes.
type Checker struct {
	region api.Region

	ec2 ec2Service
	r53 r53Service
	s3  s3Service
	kms kmsService
	sts stsService
}

func NewChecker(sess *session.Session, region api.Region) *Checker {
	return &Checker{
		region: region,
		ec2:    ec2.New(sess),
		r53:    route53.New(sess),
		s3:     s3.New(sess),
		kms:    kms.New(sess),
		sts:    sts.New(sess),
	}
}
