package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	cmdList = &cobra.Command{
		Use:   "list",
		Short: "List account resources usable for a cluster deployment",
		Long:  ``,
	}

	cmdListRegions = &cobra.Command{
		Use:          "regions",
		Short:        "List regions available to this account",
		RunE:         runCmdListRegions,
		SilenceUsage: true,
	}

	cmdListZones = &cobra.Command{
		Use:          "availability-zones",
		Short:        "List availability zones of the configured region",
		RunE:         runCmdListZones,
		SilenceUsage: true,
	}

	cmdListKeyPairs = &cobra.Command{
		Use:          "key-pairs",
		Short:        "List EC2 key pairs in the configured region",
		RunE:         runCmdListKeyPairs,
		SilenceUsage: true,
	}

	cmdListHostedZones = &cobra.Command{
		Use:          "hosted-zones",
		Short:        "List Route53 hosted zones of this account",
		RunE:         runCmdListHostedZones,
		SilenceUsage: true,
	}

	cmdListBuckets = &cobra.Command{
		Use:          "buckets",
		Short:        "List S3 buckets owned by this account",
		RunE:         runCmdListBuckets,
		SilenceUsage: true,
	}

	cmdListKMSKeys = &cobra.Command{
		Use:          "kms-keys",
		Short:        "List KMS key aliases in the configured region",
		RunE:         runCmdListKMSKeys,
		SilenceUsage: true,
	}
)

func init() {
	RootCmd.AddCommand(cmdList)
	cmdList.PersistentFlags().StringVar(&overrideOpts.Region.Name, "region", "", "The AWS region to inspect")
	cmdList.PersistentFlags().StringVar(&overrideOpts.Profile, "profile", "", "The AWS shared-config profile to use")
	cmdList.AddCommand(cmdListRegions)
	cmdList.AddCommand(cmdListZones)
	cmdList.AddCommand(cmdListKeyPairs)
	cmdList.AddCommand(cmdListHostedZones)
	cmdList.AddCommand(cmdListBuckets)
	cmdList.AddCommand(cmdListKMSKeys)
}

func runCmdListRegions(_ *cobra.Command, _ []string) error {
	checker, err := newChecker()
	if err != nil {
		return err
	}
	regions, err := checker.ListRegions()
	if err != nil {
		return err
	}
	for _, r := range regions {
		fmt.Println(r)
	}
	return nil
}

func runCmdListZones(_ *cobra.Command, _ []string) error {
	checker, err := newChecker()
	if err != nil {
		return err
	}
	zones, err := checker.AvailableZones()
	if err != nil {
		return err
	}
	for _, z := range zones {
		fmt.Println(z)
	}
	return nil
}

func runCmdListKeyPairs(_ *cobra.Command, _ []string) error {
	checker, err := newChecker()
	if err != nil {
		return err
	}
	keyPairs, err := checker.ListKeyPairs()
	if err != nil {
		return err
	}
	for _, kp := range keyPairs {
		fmt.Println(kp)
	}
	return nil
}

func runCmdListHostedZones(_ *cobra.Command, _ []string) error {
	checker, err := newChecker()
	if err != nil {
		return err
	}
	zones, err := checker.ListHostedZones()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, '\t', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, z := range zones {
		fmt.Fprintf(w, "%s\t%s\n", z.ID, z.Name)
	}
	return w.Flush()
}

func runCmdListBuckets(_ *cobra.Command, _ []string) error {
	checker, err := newChecker()
	if err != nil {
		return err
	}
	buckets, err := checker.ListBuckets()
	if err != nil {
		return err
	}
	for _, b := range buckets {
		fmt.Println(b)
	}
	return nil
}

func runCmdListKMSKeys(_ *cobra.Command, _ []string) error {
	checker, err := newChecker()
	if err != nil {
		return err
	}
	aliases, err := checker.ListKMSAliases()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, '\t', 0)
	fmt.Fprintln(w, "ALIAS\tKEY ID")
	for _, a := range aliases {
		fmt.Fprintf(w, "%s\t%s\n", a.Alias, a.TargetID)
	}
	return w.Flush()
}
