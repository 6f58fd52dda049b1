package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AccountDetails is the static metadata block printed at the top of a
// statement. It is supplied once per conversion by the caller and read-only
// to the pipeline.
type AccountDetails struct {
	HolderName    string `yaml:"holder_name" json:"holderName"`
	AddressLine1  string `yaml:"address_line_1" json:"addressLine1"`
	AddressLine2  string `yaml:"address_line_2" json:"addressLine2"`
	AccountNumber string `yaml:"account_number" json:"accountNumber"`
	CustomerID    string `yaml:"customer_id" json:"customerId"`
	BranchName    string `yaml:"branch_name" json:"branchName"`
	StatementFrom string `yaml:"statement_from" json:"statementFrom"`
	StatementTo   string `yaml:"statement_to" json:"statementTo"`
}

// LoadAccountDetails reads account metadata from a YAML file.
func LoadAccountDetails(path string) (AccountDetails, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- CLI tool reads user-provided paths
	if err != nil {
		return AccountDetails{}, fmt.Errorf("error reading account file: %w", err)
	}

	var account AccountDetails
	if err := yaml.Unmarshal(data, &account); err != nil {
		return AccountDetails{}, fmt.Errorf("error parsing account file %s: %w", path, err)
	}
	return account, nil
}
