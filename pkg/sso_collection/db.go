package sso_collection

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

const insertBatchSize = 500

// StoreEnabledUsers persists the denormalized assignment rows in batches.
// Persistence is best-effort: the report never depends on it, the rows
// only feed the advise stage.
func StoreEnabledUsers(db *sql.DB, users []EnabledUser, catalog map[string]*PermissionSetDetails) error {
	type row struct {
		user       EnabledUser
		assignment AssignmentDetail
	}
	var rows []row
	for _, user := range users {
		for _, assignment := range user.Assignments {
			rows = append(rows, row{user: user, assignment: assignment})
		}
	}

	for start := 0; start < len(rows); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(rows) {
			end = len(rows)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("error starting transaction: %v", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO sso_assignment (
				user_id, user_name, email, account_id, account_name,
				permission_set_arn, permission_set_name, managed_policies, inline_policy
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				user_name = VALUES(user_name), email = VALUES(email),
				account_name = VALUES(account_name), permission_set_name = VALUES(permission_set_name),
				managed_policies = VALUES(managed_policies), inline_policy = VALUES(inline_policy)
		`)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error preparing statement: %v", err)
		}

		for _, r := range rows[start:end] {
			policies, err := json.Marshal(r.assignment.ManagedPolicies)
			if err != nil {
				policies = []byte("[]")
			}
			inlinePolicy := ""
			if ps, ok := catalog[r.assignment.PermissionSetArn]; ok {
				inlinePolicy = ps.InlinePolicy
			}
			_, err = stmt.Exec(
				r.user.UserID, r.user.UserName, r.user.Email,
				r.assignment.AccountID, r.assignment.AccountName,
				r.assignment.PermissionSetArn, r.assignment.PermissionSetName,
				string(policies), inlinePolicy,
			)
			if err != nil {
				fmt.Println("Error inserting row:", err)
			}
		}

		stmt.Close()
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("error committing transaction: %v", err)
		}
	}

	return nil
}
