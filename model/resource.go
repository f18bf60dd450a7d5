package model

// AccountInfo represents the AWS account the chargeback runs against
type AccountInfo struct {
	Provider    string
	AccountID   string
	AccountName string
}
