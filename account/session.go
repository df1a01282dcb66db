package account

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials/stscreds"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/kubernetes-incubator/kube-aws-up/pkg/api"
)

// NewSession creates an AWS session for the given region and named profile.
func NewSession(region api.Region, profile string, debug bool) (*session.Session, error) {
	awsConfig := aws.NewConfig().
		WithRegion(region.String()).
		WithCredentialsChainVerboseErrors(true)

	if debug {
		awsConfig = awsConfig.WithLogLevel(aws.LogDebug)
	}

	sess, err := newSession(awsConfig, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to establish aws session: %v", err)
	}
	return sess, nil
}

// newSession returns an AWS session which supports source_profile and assume role with MFA
func newSession(config *aws.Config, profile string) (*session.Session, error) {
	return session.NewSessionWithOptions(session.Options{
		Config:  *config,
		Profile: profile,
		// This seems to be required for AWS_SDK_LOAD_CONFIG
		SharedConfigState: session.SharedConfigEnable,
		// This seems to be required by MFA
		AssumeRoleTokenProvider: stscreds.StdinTokenProvider,
	})
}
