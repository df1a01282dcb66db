package account

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/pkg/errors"
)

// Identity describes the credentials the current profile resolves to.
type Identity struct {
	Account string
	ARN     string
	UserID  string
}

func (i *Identity) String() string {
	buf := new(bytes.Buffer)
	w := new(tabwriter.Writer)
	w.Init(buf, 0, 8, 0, '\t', 0)

	fmt.Fprintf(w, "Account:\t%s\n", i.Account)
	fmt.Fprintf(w, "ARN:\t%s\n", i.ARN)
	fmt.Fprintf(w, "UserID:\t%s\n", i.UserID)

	w.Flush()
	return buf.String()
}

// CallerIdentity resolves the active credentials. It is the first check run
// by every command so a misconfigured profile fails fast with a clear error.
func (c *Checker) CallerIdentity() (*Identity, error) {
	out, err := c.sts.GetCallerIdentity(&sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, errors.Wrap(err, "unable to resolve AWS credentials. Check your profile and credentials chain")
	}

	return &Identity{
		Account: aws.StringValue(out.Account),
		ARN:     aws.StringValue(out.Arn),
		UserID:  aws.StringValue(out.UserId),
	}, nil
}
