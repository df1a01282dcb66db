package account

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
)

// ListBuckets returns the names of every S3 bucket owned by the account.
func (c *Checker) ListBuckets() ([]string, error) {
	out, err := c.s3.ListBuckets(&s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("error listing buckets: %v", err)
	}

	names := make([]string, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		names = append(names, aws.StringValue(b.Name))
	}
	return names, nil
}

// ValidateBucket checks that the asset bucket exists, is accessible and
// lives in the session's region.
func (c *Checker) ValidateBucket(bucket string) error {
	if _, err := c.s3.HeadBucket(&s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		if awsErr, ok := err.(awserr.RequestFailure); ok {
			switch awsErr.StatusCode() {
			case 404:
				return fmt.Errorf("bucket %s does not exist. Create it or pass --create-bucket", bucket)
			case 403:
				return fmt.Errorf("bucket %s exists but this account is not allowed to access it", bucket)
			}
		}
		return fmt.Errorf("error checking bucket %s: %v", bucket, err)
	}

	loc, err := c.s3.GetBucketLocation(&s3.GetBucketLocationInput{Bucket: aws.String(bucket)})
	if err != nil {
		return fmt.Errorf("error getting location of bucket %s: %v", bucket, err)
	}

	// GetBucketLocation returns an empty constraint for us-east-1.
	bucketRegion := aws.StringValue(loc.LocationConstraint)
	if bucketRegion == "" {
		bucketRegion = "us-east-1"
	}
	if bucketRegion != c.region.String() {
		return fmt.Errorf("bucket %s is in region %s but the cluster is being deployed to %s", bucket, bucketRegion, c.region)
	}

	return nil
}

// EmptyPrefix deletes every object under prefix in the given bucket. Used to
// clean up cluster assets after a destroy. Returns the number of objects
// deleted.
func (c *Checker) EmptyPrefix(bucket, prefix string) (int, error) {
	deleted := 0
	var token *string

	for {
		page, err := c.s3.ListObjectsV2(&s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return deleted, fmt.Errorf("error listing objects under s3://%s/%s: %v", bucket, prefix, err)
		}
		if len(page.Contents) == 0 {
			return deleted, nil
		}

		objects := make([]*s3.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			objects = append(objects, &s3.ObjectIdentifier{Key: obj.Key})
		}
		if _, err := c.s3.DeleteObjects(&s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &s3.Delete{Objects: objects},
		}); err != nil {
			return deleted, fmt.Errorf("error deleting objects under s3://%s/%s: %v", bucket, prefix, err)
		}
		deleted += len(objects)

		if !aws.BoolValue(page.IsTruncated) {
			return deleted, nil
		}
		token = page.NextContinuationToken
	}
}

// CreateBucket creates the asset bucket in the session's region and enables
// versioning so old cluster assets stay recoverable.
func (c *Checker) CreateBucket(bucket string) error {
	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	}
	// us-east-1 rejects an explicit location constraint.
	if c.region.String() != "us-east-1" {
		input.CreateBucketConfiguration = &s3.CreateBucketConfiguration{
			LocationConstraint: aws.String(c.region.String()),
		}
	}

	if _, err := c.s3.CreateBucket(input); err != nil {
		if awsErr, ok := err.(awserr.Error); ok && awsErr.Code() == s3.ErrCodeBucketAlreadyOwnedByYou {
			return nil
		}
		return fmt.Errorf("error creating bucket %s: %v", bucket, err)
	}

	if _, err := c.s3.PutBucketVersioning(&s3.PutBucketVersioningInput{
		Bucket: aws.String(bucket),
		VersioningConfiguration: &s3.VersioningConfiguration{
			Status: aws.String(s3.BucketVersioningStatusEnabled),
		},
	}); err != nil {
		return fmt.Errorf("error enabling versioning on bucket %s: %v", bucket, err)
	}

	return nil
}
