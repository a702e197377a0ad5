package billing

import "errors"

// ErrDuplicateTransaction is returned by stores when a payment or membership
// with the same transaction id already exists.
var ErrDuplicateTransaction = errors.New("transaction already recorded")
