package auth_handling

import (
	"flag"
	"fmt"
	"os"
)

type RunConfig struct {
	CredentialsFile string
	Region          string
	OutputFile      string
	ShouldAdvise    bool
}

func AcceptCredentials(credentialsFile, region, outputFile string, advise bool) (RunConfig, error) {
	if region == "" {
		region = "us-east-1"
	}

	return RunConfig{
		CredentialsFile: credentialsFile,
		Region:          region,
		OutputFile:      outputFile,
		ShouldAdvise:    advise,
	}, nil
}

func Authenticator() RunConfig {
	var scanCmd = flag.NewFlagSet("scan", flag.ExitOnError)

	credentialsFile := scanCmd.String("credentials-file", "", "AWS credentials file path, KEY=VALUE lines including the 'AWS_REGION=' variable. Falls back to environment credentials when omitted")
	region := scanCmd.String("region", "", "AWS region of the IAM Identity Center instance (default us-east-1)")
	outputFile := scanCmd.String("output", "", "Report file path. Defaults to aws_sso_enabled_users_<timestamp>.json")
	advise := scanCmd.Bool("advise", false, "Produce a risk report from the collected assignments after the scan")

	scanCmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Scans AWS IAM Identity Center for enabled users and their effective access.\n\n")
		scanCmd.PrintDefaults()
	}

	var args []string
	if len(os.Args) > 1 {
		args = os.Args[1:]
	}
	scanCmd.Parse(args)

	config, err := AcceptCredentials(*credentialsFile, *region, *outputFile, *advise)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		scanCmd.Usage()
		os.Exit(1)
	}

	return config
}
