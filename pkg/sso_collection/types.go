package sso_collection

// Instance is the organization's IAM Identity Center instance. There is at
// most one per organization.
type Instance struct {
	InstanceArn     string
	IdentityStoreID string
}

// PermissionSetDetails holds the resolved descriptor of one permission set,
// keyed by ARN in the catalog. ManagedPolicies and InlinePolicy stay empty
// when their lookups fail.
type PermissionSetDetails struct {
	Arn             string
	Name            string
	Description     string
	ManagedPolicies []ManagedPolicy
	InlinePolicy    string
}

type ManagedPolicy struct {
	Name string `json:"Name"`
	Arn  string `json:"Arn"`
}

// Assignment links one user to one permission set provisioned on one
// account.
type Assignment struct {
	UserID           string
	AccountID        string
	PermissionSetArn string
}

// EnabledUser is one record of the output report. A user shows up here iff
// at least one assignment resolved for them - there is no stored
// enabled/disabled flag in the source APIs.
type EnabledUser struct {
	UserID      string             `json:"UserId"`
	UserName    string             `json:"UserName"`
	Email       string             `json:"Email"`
	Status      string             `json:"Status"`
	Assignments []AssignmentDetail `json:"Assignments"`
}

type AssignmentDetail struct {
	AccountID         string          `json:"AccountId"`
	AccountName       string          `json:"AccountName"`
	PermissionSetArn  string          `json:"PermissionSetArn"`
	PermissionSetName string          `json:"PermissionSetName"`
	ManagedPolicies   []ManagedPolicy `json:"ManagedPolicies"`
}

// Summary carries the end-of-run counters printed to the operator.
type Summary struct {
	TotalUsers          int
	EnabledUsers        int
	TotalPermissionSets int
}
