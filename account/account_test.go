package account

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/kms"
	"github.com/aws/aws-sdk-go/service/route53"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubernetes-incubator/kube-aws-up/pkg/api"
)

type dummyEC2Service struct {
	regions  []string
	zones    []string
	keyPairs map[string]bool
}

func (svc dummyEC2Service) DescribeRegions(*ec2.DescribeRegionsInput) (*ec2.DescribeRegionsOutput, error) {
	out := &ec2.DescribeRegionsOutput{}
	for _, r := range svc.regions {
		out.Regions = append(out.Regions, &ec2.Region{RegionName: aws.String(r)})
	}
	return out, nil
}

func (svc dummyEC2Service) DescribeAvailabilityZones(*ec2.DescribeAvailabilityZonesInput) (*ec2.DescribeAvailabilityZonesOutput, error) {
	out := &ec2.DescribeAvailabilityZonesOutput{}
	for _, z := range svc.zones {
		out.AvailabilityZones = append(out.AvailabilityZones, &ec2.AvailabilityZone{
			ZoneName: aws.String(z),
			State:    aws.String("available"),
		})
	}
	return out, nil
}

func (svc dummyEC2Service) DescribeKeyPairs(input *ec2.DescribeKeyPairsInput) (*ec2.DescribeKeyPairsOutput, error) {
	out := &ec2.DescribeKeyPairsOutput{}
	for _, name := range input.KeyNames {
		if !svc.keyPairs[aws.StringValue(name)] {
			return nil, awserr.New("InvalidKeyPair.NotFound", fmt.Sprintf("The key pair '%s' does not exist", aws.StringValue(name)), nil)
		}
		out.KeyPairs = append(out.KeyPairs, &ec2.KeyPairInfo{KeyName: name})
	}
	return out, nil
}

type dummyR53Service struct {
	hostedZones map[string][]route53.HostedZone
	recordSets  map[string][]string
}

func (svc dummyR53Service) ListHostedZones(*route53.ListHostedZonesInput) (*route53.ListHostedZonesOutput, error) {
	out := &route53.ListHostedZonesOutput{IsTruncated: aws.Bool(false)}
	for _, zones := range svc.hostedZones {
		for i := range zones {
			out.HostedZones = append(out.HostedZones, &zones[i])
		}
	}
	return out, nil
}

func (svc dummyR53Service) ListHostedZonesByName(input *route53.ListHostedZonesByNameInput) (*route53.ListHostedZonesByNameOutput, error) {
	out := &route53.ListHostedZonesByNameOutput{}
	zones := svc.hostedZones[aws.StringValue(input.DNSName)]
	for i := range zones {
		out.HostedZones = append(out.HostedZones, &zones[i])
	}
	return out, nil
}

func (svc dummyR53Service) GetHostedZone(input *route53.GetHostedZoneInput) (*route53.GetHostedZoneOutput, error) {
	for _, zones := range svc.hostedZones {
		for i := range zones {
			if aws.StringValue(zones[i].Id) == aws.StringValue(input.Id) {
				return &route53.GetHostedZoneOutput{HostedZone: &zones[i]}, nil
			}
		}
	}
	return nil, awserr.New(route53.ErrCodeNoSuchHostedZone, "no such hosted zone", nil)
}

func (svc dummyR53Service) ListResourceRecordSets(input *route53.ListResourceRecordSetsInput) (*route53.ListResourceRecordSetsOutput, error) {
	out := &route53.ListResourceRecordSetsOutput{}
	for _, name := range svc.recordSets[aws.StringValue(input.HostedZoneId)] {
		out.ResourceRecordSets = append(out.ResourceRecordSets, &route53.ResourceRecordSet{
			Name: aws.String(name),
		})
	}
	return out, nil
}

type dummyS3Service struct {
	buckets map[string]string // name -> location constraint
	denied  map[string]bool
	created []string
	objects map[string][]string // bucket -> keys
}

func (svc *dummyS3Service) HeadBucket(input *s3.HeadBucketInput) (*s3.HeadBucketOutput, error) {
	name := aws.StringValue(input.Bucket)
	if svc.denied[name] {
		return nil, awserr.NewRequestFailure(awserr.New("Forbidden", "Forbidden", nil), 403, "")
	}
	if _, ok := svc.buckets[name]; !ok {
		return nil, awserr.NewRequestFailure(awserr.New("NotFound", "Not Found", nil), 404, "")
	}
	return &s3.HeadBucketOutput{}, nil
}

func (svc *dummyS3Service) GetBucketLocation(input *s3.GetBucketLocationInput) (*s3.GetBucketLocationOutput, error) {
	loc := svc.buckets[aws.StringValue(input.Bucket)]
	out := &s3.GetBucketLocationOutput{}
	if loc != "" {
		out.LocationConstraint = aws.String(loc)
	}
	return out, nil
}

func (svc *dummyS3Service) CreateBucket(input *s3.CreateBucketInput) (*s3.CreateBucketOutput, error) {
	loc := ""
	if input.CreateBucketConfiguration != nil {
		loc = aws.StringValue(input.CreateBucketConfiguration.LocationConstraint)
	}
	svc.buckets[aws.StringValue(input.Bucket)] = loc
	svc.created = append(svc.created, aws.StringValue(input.Bucket))
	return &s3.CreateBucketOutput{}, nil
}

func (svc *dummyS3Service) PutBucketVersioning(*s3.PutBucketVersioningInput) (*s3.PutBucketVersioningOutput, error) {
	return &s3.PutBucketVersioningOutput{}, nil
}

func (svc *dummyS3Service) ListObjectsV2(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for _, key := range svc.objects[aws.StringValue(input.Bucket)] {
		if strings.HasPrefix(key, aws.StringValue(input.Prefix)) {
			out.Contents = append(out.Contents, &s3.Object{Key: aws.String(key)})
		}
	}
	return out, nil
}

func (svc *dummyS3Service) DeleteObjects(input *s3.DeleteObjectsInput) (*s3.DeleteObjectsOutput, error) {
	bucket := aws.StringValue(input.Bucket)
	doomed := map[string]bool{}
	for _, obj := range input.Delete.Objects {
		doomed[aws.StringValue(obj.Key)] = true
	}

	var kept []string
	for _, key := range svc.objects[bucket] {
		if !doomed[key] {
			kept = append(kept, key)
		}
	}
	svc.objects[bucket] = kept
	return &s3.DeleteObjectsOutput{}, nil
}

func (svc *dummyS3Service) ListBuckets(*s3.ListBucketsInput) (*s3.ListBucketsOutput, error) {
	out := &s3.ListBucketsOutput{}
	for name := range svc.buckets {
		out.Buckets = append(out.Buckets, &s3.Bucket{Name: aws.String(name)})
	}
	return out, nil
}

type dummyKMSService struct {
	keys     map[string]kms.KeyMetadata // lookup id/arn/alias -> metadata
	aliased  []string
	creating bool
}

func (svc *dummyKMSService) DescribeKey(input *kms.DescribeKeyInput) (*kms.DescribeKeyOutput, error) {
	meta, ok := svc.keys[aws.StringValue(input.KeyId)]
	if !ok {
		return nil, awserr.New(kms.ErrCodeNotFoundException, "key not found", nil)
	}
	return &kms.DescribeKeyOutput{KeyMetadata: &meta}, nil
}

func (svc *dummyKMSService) CreateKey(*kms.CreateKeyInput) (*kms.CreateKeyOutput, error) {
	svc.creating = true
	return &kms.CreateKeyOutput{
		KeyMetadata: &kms.KeyMetadata{
			KeyId:   aws.String("11111111-2222-3333-4444-555555555555"),
			Arn:     aws.String("arn:aws:kms:us-west-1:123456789012:key/11111111-2222-3333-4444-555555555555"),
			Enabled: aws.Bool(true),
		},
	}, nil
}

func (svc *dummyKMSService) CreateAlias(input *kms.CreateAliasInput) (*kms.CreateAliasOutput, error) {
	svc.aliased = append(svc.aliased, aws.StringValue(input.AliasName))
	return &kms.CreateAliasOutput{}, nil
}

func (svc *dummyKMSService) ListAliases(*kms.ListAliasesInput) (*kms.ListAliasesOutput, error) {
	out := &kms.ListAliasesOutput{Truncated: aws.Bool(false)}
	for _, a := range svc.aliased {
		out.Aliases = append(out.Aliases, &kms.AliasListEntry{AliasName: aws.String(a)})
	}
	return out, nil
}

func newTestChecker() *Checker {
	return &Checker{
		region: api.RegionForName("us-west-1"),
		ec2: dummyEC2Service{
			regions:  []string{"us-east-1", "us-west-1", "eu-west-1"},
			zones:    []string{"us-west-1a", "us-west-1c"},
			keyPairs: map[string]bool{"test-key": true},
		},
		r53: dummyR53Service{
			hostedZones: map[string][]route53.HostedZone{
				"staging.example.com.": {
					{Id: aws.String("/hostedzone/STAGINGZONE"), Name: aws.String("staging.example.com.")},
				},
				"ambiguous.example.com.": {
					{Id: aws.String("/hostedzone/AMBIG1"), Name: aws.String("ambiguous.example.com.")},
					{Id: aws.String("/hostedzone/AMBIG2"), Name: aws.String("ambiguous.example.com.")},
				},
			},
			recordSets: map[string][]string{
				"/hostedzone/STAGINGZONE": {"existing.staging.example.com."},
			},
		},
		s3: &dummyS3Service{
			buckets: map[string]string{
				"assets-us-west-1": "us-west-1",
				"assets-us-east-1": "",
			},
			denied: map[string]bool{"other-peoples-bucket": true},
			objects: map[string][]string{
				"assets-us-west-1": {
					"clusters/test-cluster/stack.json",
					"clusters/test-cluster/userdata",
					"clusters/other-cluster/stack.json",
				},
			},
		},
		kms: &dummyKMSService{
			keys: map[string]kms.KeyMetadata{
				"alias/test-cluster": {
					Arn:     aws.String("arn:aws:kms:us-west-1:123456789012:key/aaaa"),
					Enabled: aws.Bool(true),
				},
				"disabled-key": {
					Arn:     aws.String("arn:aws:kms:us-west-1:123456789012:key/bbbb"),
					Enabled: aws.Bool(false),
				},
			},
		},
	}
}

func TestValidateRegion(t *testing.T) {
	c := newTestChecker()

	assert.NoError(t, c.ValidateRegion("us-west-1"))

	err := c.ValidateRegion("mars-north-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mars-north-1")
	assert.Contains(t, err.Error(), "us-west-1", "the error should name the available regions")
}

func TestValidateAvailabilityZones(t *testing.T) {
	c := newTestChecker()

	assert.NoError(t, c.ValidateAvailabilityZones([]string{"us-west-1a", "us-west-1c"}))

	err := c.ValidateAvailabilityZones([]string{"us-west-1a", "us-west-1b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "us-west-1b")
	assert.Contains(t, err.Error(), "us-west-1c", "the error should name the available zones")
}

func TestDefaultAvailabilityZone(t *testing.T) {
	c := newTestChecker()

	az, err := c.DefaultAvailabilityZone()
	require.NoError(t, err)
	assert.Equal(t, "us-west-1a", az)
}

func TestValidateKeyPair(t *testing.T) {
	c := newTestChecker()

	assert.NoError(t, c.ValidateKeyPair("test-key"))

	err := c.ValidateKeyPair("missing-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing-key")
}

func TestResolveHostedZone(t *testing.T) {
	c := newTestChecker()

	id, err := c.ResolveHostedZone("staging.example.com")
	require.NoError(t, err)
	assert.Equal(t, "/hostedzone/STAGINGZONE", id)

	_, err = c.ResolveHostedZone("nosuch.example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	_, err = c.ResolveHostedZone("ambiguous.example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple hosted zones")
}

func TestValidateDNSConfig(t *testing.T) {
	c := newTestChecker()

	assert.NoError(t, c.ValidateDNSConfig("api.staging.example.com", "/hostedzone/STAGINGZONE"))

	err := c.ValidateDNSConfig("api.elsewhere.example.com", "/hostedzone/STAGINGZONE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a sub-domain")

	err = c.ValidateDNSConfig("existing.staging.example.com", "/hostedzone/STAGINGZONE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestValidateBucket(t *testing.T) {
	c := newTestChecker()

	assert.NoError(t, c.ValidateBucket("assets-us-west-1"))

	err := c.ValidateBucket("assets-us-east-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "us-east-1", "a bucket in another region should be rejected")

	err = c.ValidateBucket("no-such-bucket")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	err = c.ValidateBucket("other-peoples-bucket")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed to access")
}

func TestCreateBucketSetsLocationConstraint(t *testing.T) {
	c := newTestChecker()
	svc := c.s3.(*dummyS3Service)

	require.NoError(t, c.CreateBucket("new-assets"))
	assert.Equal(t, []string{"new-assets"}, svc.created)
	assert.Equal(t, "us-west-1", svc.buckets["new-assets"])
}

func TestCreateBucketUsEast1OmitsLocationConstraint(t *testing.T) {
	c := newTestChecker()
	c.region = api.RegionForName("us-east-1")
	svc := c.s3.(*dummyS3Service)

	require.NoError(t, c.CreateBucket("new-assets"))
	assert.Equal(t, "", svc.buckets["new-assets"])
}

func TestEmptyPrefix(t *testing.T) {
	c := newTestChecker()
	svc := c.s3.(*dummyS3Service)

	deleted, err := c.EmptyPrefix("assets-us-west-1", "clusters/test-cluster/")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.Equal(t, []string{"clusters/other-cluster/stack.json"}, svc.objects["assets-us-west-1"])

	deleted, err = c.EmptyPrefix("assets-us-west-1", "clusters/no-such-cluster/")
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}

func TestResolveKMSKey(t *testing.T) {
	c := newTestChecker()

	arn, err := c.ResolveKMSKey("alias/test-cluster")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(arn, "arn:aws:kms:"))

	_, err = c.ResolveKMSKey("disabled-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")

	_, err = c.ResolveKMSKey("no-such-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestCreateKMSKey(t *testing.T) {
	c := newTestChecker()
	svc := c.kms.(*dummyKMSService)

	arn, err := c.CreateKMSKey("test-cluster")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(arn, "arn:aws:kms:"))
	assert.True(t, svc.creating)
	assert.Equal(t, []string{"alias/test-cluster"}, svc.aliased)
}
