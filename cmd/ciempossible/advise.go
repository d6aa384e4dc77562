package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PaloAltoNetworks/CIEMPossible/pkg/auth_handling"
)

// Builds a risk report from the persisted assignments: identities holding
// administrative permission sets, inline policies with wildcard grants,
// and identities with access spread across many accounts.

func Advise() {
	fmt.Println("\n\033[31mPreparing output report...\033[0m")
	currentDate := time.Now().Format("20060102")
	filename := fmt.Sprintf("ciempossible_report_%s.json", currentDate)
	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating report file: %v\n", err)
		return
	}
	defer file.Close()

	DB, err := auth_handling.DBConnect()
	if err != nil {
		fmt.Println("Error in DB Connection", err)
		return
	}
	defer DB.Close()

	report := make(map[string]interface{})

	// Section 1: Identities with administrative access
	adminAccess := []map[string]interface{}{}
	query := `
		SELECT user_name, email, account_id, account_name, permission_set_name, 'Administrative managed policy attached' AS risk_reason
		FROM sso_assignment
		WHERE managed_policies LIKE '%AdministratorAccess%'

		UNION ALL

		SELECT user_name, email, account_id, account_name, permission_set_name, 'Wildcard action in inline policy' AS risk_reason
		FROM sso_assignment
		WHERE inline_policy LIKE '%"Action"%"*"%' OR inline_policy LIKE '%"Action": "*"%'

		ORDER BY user_name, account_id
	`
	rows, err := DB.Query(query)
	if err != nil {
		fmt.Printf("Error querying database: %v\n", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var userName, email, accountID, accountName, permissionSetName, riskReason string
		if err := rows.Scan(&userName, &email, &accountID, &accountName, &permissionSetName, &riskReason); err != nil {
			fmt.Printf("Error scanning row: %v\n", err)
			continue
		}
		row := map[string]interface{}{
			"user_name":           userName,
			"email":               email,
			"account_id":          accountID,
			"account_name":        accountName,
			"permission_set_name": permissionSetName,
			"risk_reason":         strings.ToUpper(riskReason),
		}
		adminAccess = append(adminAccess, row)
	}
	if err = rows.Err(); err != nil {
		fmt.Printf("Error iterating over rows: %v\n", err)
	}
	report["administrative_access"] = adminAccess

	// Section 2: Identities with wide account reach
	wideReach := []map[string]interface{}{}
	reachQuery := `
		SELECT user_name, email, COUNT(DISTINCT account_id) AS account_count
		FROM sso_assignment
		GROUP BY user_name, email
		HAVING account_count >= 5
		ORDER BY account_count DESC
	`
	reachRows, err := DB.Query(reachQuery)
	if err != nil {
		fmt.Printf("Error querying account reach: %v\n", err)
		return
	}
	defer reachRows.Close()

	for reachRows.Next() {
		var userName, email string
		var accountCount int
		if err := reachRows.Scan(&userName, &email, &accountCount); err != nil {
			fmt.Printf("Error scanning account reach row: %v\n", err)
			continue
		}
		row := map[string]interface{}{
			"user_name":     userName,
			"email":         email,
			"account_count": accountCount,
		}
		wideReach = append(wideReach, row)
	}
	if err = reachRows.Err(); err != nil {
		fmt.Printf("Error iterating over account reach rows: %v\n", err)
	}
	report["wide_account_reach"] = wideReach

	// Write JSON to file
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		fmt.Printf("Error writing JSON report: %v\n", err)
		return
	}

	fmt.Printf("\n\033[31mNOTICE: Report written to %s. Assignments skipped during collection are not represented. Explore the database for more information.\033[0m\n", filename)
}
