// Package releases looks up published releases of the external
// cluster-bootstrapping tool on GitHub.
package releases

import (
	"context"
	"os"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/google/go-github/github"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	owner = "kubernetes-incubator"
	repo  = "kube-aws"
)

// LatestBootstrapperVersion returns the version of the latest published
// release of the bootstrapping tool. GITHUB_TOKEN is used when set, which
// raises the unauthenticated rate limit.
func LatestBootstrapperVersion(ctx context.Context) (*semver.Version, error) {
	var tc *oauth2.Token
	var client *github.Client

	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		tc = &oauth2.Token{AccessToken: token}
		ts := oauth2.StaticTokenSource(tc)
		client = github.NewClient(oauth2.NewClient(ctx, ts))
	} else {
		client = github.NewClient(nil)
	}

	release, _, err := client.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch the latest %s release", repo)
	}

	tag := strings.TrimPrefix(release.GetTagName(), "v")
	v, err := semver.NewVersion(tag)
	if err != nil {
		return nil, errors.Wrapf(err, "release tag %q is not a version", release.GetTagName())
	}
	return v, nil
}
