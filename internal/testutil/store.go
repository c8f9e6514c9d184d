// Package testutil opens migrated stores and seeds rows for package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"remate/internal/domain"
	"remate/internal/infrastructure/database"
	"remate/internal/infrastructure/migrations"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Package tests run at info so SQL statements stay out of test output.
func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// OpenStore returns a store in a temporary file with the whole chain applied.
func OpenStore(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "remate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	engine, err := migrations.NewEngine(db, migrations.Chain())
	require.NoError(t, err)
	_, err = engine.Up(context.Background())
	require.NoError(t, err)
	return db
}

// Date returns midnight UTC of the given day as a date column value.
func Date(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Tick waits long enough for the millisecond trigger clock to advance.
func Tick() {
	time.Sleep(5 * time.Millisecond)
}

func Client(t testing.TB, db *gorm.DB, company string) domain.Client {
	t.Helper()
	c := domain.Client{Company: company, Province: "Córdoba", City: "Río Cuarto"}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func Auction(t testing.TB, db *gorm.DB, name string) domain.Auction {
	t.Helper()
	a := domain.Auction{
		Name:     name,
		Province: "Buenos Aires",
		City:     "Pergamino",
		Date:     Date(2024, time.March, 14),
		Status:   domain.AuctionPending,
	}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func Bundle(t testing.TB, db *gorm.DB, auctionID, sellerID uint, number int) domain.Bundle {
	t.Helper()
	b := domain.Bundle{Number: number, Name: "Lote", AuctionID: auctionID, SellerID: sellerID}
	require.NoError(t, db.Create(&b).Error)
	return b
}

// Sale inserts a live sale and its detail rows without the service checks.
func Sale(t testing.TB, db *gorm.DB, auctionID, buyerID uint, price float64, bundleIDs ...uint) domain.Sale {
	t.Helper()
	s := domain.Sale{AuctionID: auctionID, BuyerID: &buyerID, TotalPrice: price, Deadline: Date(2024, time.April, 1)}
	require.NoError(t, db.Create(&s).Error)
	for _, id := range bundleIDs {
		require.NoError(t, db.Create(&domain.SaleDetail{SaleID: s.ID, BundleID: id}).Error)
	}
	s.BundleIDs = bundleIDs
	return s
}

func Transaction(t testing.TB, db *gorm.DB, auctionID, clientID uint, amount float64, typ domain.TransactionType) domain.Transaction {
	t.Helper()
	tx := domain.Transaction{AuctionID: auctionID, ClientID: clientID, Amount: amount, Type: typ}
	require.NoError(t, db.Create(&tx).Error)
	return tx
}
