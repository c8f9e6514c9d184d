package domain

import (
	"fmt"
	"strings"
)

// AuctionStatus is the closed vocabulary of auction states. The auction
// table carries a CHECK constraint over the same values.
type AuctionStatus string

const (
	AuctionPending    AuctionStatus = "PENDING"
	AuctionInProgress AuctionStatus = "IN_PROGRESS"
	AuctionCancelled  AuctionStatus = "CANCELLED"
	AuctionFinished   AuctionStatus = "FINISHED"
)

var auctionStatuses = []AuctionStatus{AuctionPending, AuctionInProgress, AuctionCancelled, AuctionFinished}

// AuctionStatuses returns the vocabulary in lifecycle order.
func AuctionStatuses() []AuctionStatus {
	out := make([]AuctionStatus, len(auctionStatuses))
	copy(out, auctionStatuses)
	return out
}

func (s AuctionStatus) Valid() bool {
	for _, v := range auctionStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s AuctionStatus) String() string {
	return string(s)
}

// ParseAuctionStatus accepts any casing and surrounding blanks.
func ParseAuctionStatus(s string) (AuctionStatus, error) {
	status := AuctionStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", &ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("%q is not one of %v", s, auctionStatuses),
			Err:     ErrInvalidAuctionStatus,
		}
	}
	return status, nil
}

// TransactionType distinguishes money paid to a client from money
// collected from a client.
type TransactionType string

const (
	TransactionPayment    TransactionType = "PAYMENT"
	TransactionCollection TransactionType = "COLLECTION"
)

func (t TransactionType) Valid() bool {
	return t == TransactionPayment || t == TransactionCollection
}

func (t TransactionType) String() string {
	return string(t)
}

func ParseTransactionType(s string) (TransactionType, error) {
	tt := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if !tt.Valid() {
		return "", &ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("%q is not one of [%s %s]", s, TransactionPayment, TransactionCollection),
			Err:     ErrInvalidTransactionType,
		}
	}
	return tt, nil
}

// BundleStatus is derived from sale details, never stored.
type BundleStatus string

const (
	BundleForSale BundleStatus = "FOR_SALE"
	BundleSold    BundleStatus = "SOLD"
)
