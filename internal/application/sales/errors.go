package sales

import (
	"errors"
	"fmt"
)

var (
	ErrBundleAlreadySold     = errors.New("bundle already belongs to another sale")
	ErrBundleAuctionMismatch = errors.New("bundle belongs to another auction")
)

// BundleError names the bundle that could not join a sale.
type BundleError struct {
	BundleID uint
	SaleID   uint
	Err      error
}

func (e *BundleError) Error() string {
	if e.SaleID != 0 {
		return fmt.Sprintf("bundle %d: %v (sale %d)", e.BundleID, e.Err, e.SaleID)
	}
	return fmt.Sprintf("bundle %d: %v", e.BundleID, e.Err)
}

func (e *BundleError) Unwrap() error {
	return e.Err
}
