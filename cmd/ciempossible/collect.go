package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PaloAltoNetworks/CIEMPossible/pkg/auth_handling"
	"github.com/PaloAltoNetworks/CIEMPossible/pkg/sso_collection"
	"github.com/aws/aws-sdk-go/service/identitystore"
	"github.com/aws/aws-sdk-go/service/organizations"
	"github.com/aws/aws-sdk-go/service/ssoadmin"
)

// Handles the IAM Identity Center sweep: resolve the instance, build the
// permission set catalog, correlate assignments per user, export the
// enabled-user report and persist the rows for the advise stage.

func Collect(config auth_handling.RunConfig) {
	sess, err := auth_handling.AwsAuth(config)
	if err != nil {
		fmt.Printf("Failed to establish AWS client: %+v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := &sso_collection.Collector{
		SSOAdmin:      ssoadmin.New(sess),
		IdentityStore: identitystore.New(sess),
		Organizations: organizations.New(sess),
		ShowProgress:  true,
	}

	enabledUsers, summary, err := collector.Collect(ctx)
	if err != nil {
		if errors.Is(err, sso_collection.ErrNoInstance) {
			fmt.Println("No SSO instances found. Exiting.")
			return
		}
		fmt.Printf("Failed to collect SSO users: %+v\n", err)
		os.Exit(1)
	}
	if ctx.Err() != nil {
		fmt.Println("\nRun interrupted - exporting partial results")
	}

	filename := config.OutputFile
	if filename == "" {
		filename = fmt.Sprintf("aws_sso_enabled_users_%s.json", time.Now().Format("20060102_150405"))
	}
	if err := exportToJSON(enabledUsers, filename); err != nil {
		fmt.Printf("Error writing report: %v\n", err)
	} else {
		fmt.Printf("Data exported to %s\n", filename)
	}

	// Best-effort persistence for the advise stage
	DB, err := auth_handling.DBConnect()
	if err != nil {
		fmt.Println("Error in DB Connection", err)
	} else {
		defer DB.Close()
		if err := auth_handling.InitSchema(DB); err != nil {
			fmt.Println("Error initializing schema:", err)
		} else {
			if err := auth_handling.ClearDatabase(DB); err != nil {
				fmt.Printf("Failed to clear database: %+v\n", err)
			}
			if err := sso_collection.StoreEnabledUsers(DB, enabledUsers, collector.Catalog()); err != nil {
				fmt.Println("Error storing assignments:", err)
			}
		}
	}

	fmt.Println("\nSummary:")
	fmt.Printf("Total users in SSO: %d\n", summary.TotalUsers)
	fmt.Printf("Total enabled users (with assignments): %d\n", summary.EnabledUsers)
	fmt.Printf("Total permission sets: %d\n", summary.TotalPermissionSets)
}

func exportToJSON(enabledUsers []sso_collection.EnabledUser, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(enabledUsers)
}
