package account

import "github.com/amirasaad/accounts/pkg/domain/account"

// UpdateAccountRequest is the body of PUT /accounts/:id. The account document
// replaces the stored one; Active sets the indexed flag.
type UpdateAccountRequest struct {
	Active  bool            `json:"active"`
	Account account.Account `json:"account"`
}
