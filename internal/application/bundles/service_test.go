package bundles

import (
	"context"
	"errors"
	"testing"

	"remate/internal/application/common"
	"remate/internal/domain"
	"remate/internal/infrastructure/database"
	"remate/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	svc     *Service
	db      *gorm.DB
	auction domain.Auction
	seller  domain.Client
}

func setup(t *testing.T) fixture {
	db := testutil.OpenStore(t)
	return fixture{
		svc:     &Service{DB: db},
		db:      db,
		auction: testutil.Auction(t, db, "Remate"),
		seller:  testutil.Client(t, db, "Vendedor"),
	}
}

func (f fixture) input(number int) Input {
	return Input{Number: number, Name: "Cosechadora", SellerID: f.seller.ID, AuctionID: f.auction.ID}
}

func TestCreate_DuplicateNumberWithinAuction(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, f.input(201))
	require.NoError(t, err)
	assert.Equal(t, domain.BundleForSale, b.Status)
	assert.False(t, b.CreatedAt.IsZero())

	_, err = f.svc.Create(ctx, f.input(201))
	require.Error(t, err)
	assert.True(t, errors.Is(err, database.ErrUniqueViolation))
	var ce *database.ConstraintError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "bundle.number, bundle.auction_id", ce.Constraint)

	_, err = f.svc.Create(ctx, f.input(202))
	require.NoError(t, err)

	other := testutil.Auction(t, f.db, "Otro remate")
	in := f.input(201)
	in.AuctionID = other.ID
	_, err = f.svc.Create(ctx, in)
	require.NoError(t, err)

	var n int64
	require.NoError(t, f.db.Model(&domain.Bundle{}).Count(&n).Error)
	assert.EqualValues(t, 3, n)
}

func TestCreate_UnknownParentsAreForeignKeyViolations(t *testing.T) {
	f := setup(t)
	in := f.input(1)
	in.SellerID = 999
	_, err := f.svc.Create(context.Background(), in)
	assert.True(t, errors.Is(err, database.ErrForeignKeyViolation))

	in = f.input(1)
	in.AuctionID = 999
	_, err = f.svc.Create(context.Background(), in)
	assert.True(t, errors.Is(err, database.ErrForeignKeyViolation))
}

func TestCreate_RejectsRetiredParent(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.db.Delete(&domain.Auction{}, f.auction.ID).Error)
	_, err := f.svc.Create(context.Background(), f.input(1))
	assert.True(t, errors.Is(err, common.ErrParentRetired))
}

func TestCreate_ValidatesInput(t *testing.T) {
	f := setup(t)
	in := f.input(0)
	_, err := f.svc.Create(context.Background(), in)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "number", ve.Field)
}

func TestStatus_FollowsLiveSales(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	b, err := f.svc.Create(ctx, f.input(1))
	require.NoError(t, err)
	buyer := testutil.Client(t, f.db, "Comprador")
	sale := testutil.Sale(t, f.db, f.auction.ID, buyer.ID, 300, b.ID)

	got, err := f.svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BundleSold, got.Status)

	require.NoError(t, f.db.Delete(&domain.Sale{}, sale.ID).Error)
	got, err = f.svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BundleForSale, got.Status)
}

func TestList_OrdersByNumberAndFiltersStatus(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	for _, n := range []int{3, 1, 2} {
		_, err := f.svc.Create(ctx, f.input(n))
		require.NoError(t, err)
	}
	page, err := f.svc.List(ctx, domain.PageQuery{AuctionID: f.auction.ID})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{page.Items[0].Number, page.Items[1].Number, page.Items[2].Number})

	buyer := testutil.Client(t, f.db, "Comprador")
	testutil.Sale(t, f.db, f.auction.ID, buyer.ID, 10, page.Items[1].ID)

	sold, err := f.svc.List(ctx, domain.PageQuery{AuctionID: f.auction.ID, Status: "sold"})
	require.NoError(t, err)
	require.Len(t, sold.Items, 1)
	assert.Equal(t, 2, sold.Items[0].Number)
	assert.Equal(t, domain.BundleSold, sold.Items[0].Status)

	open, err := f.svc.List(ctx, domain.PageQuery{AuctionID: f.auction.ID, Status: "FOR_SALE"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, open.Total)

	_, err = f.svc.List(ctx, domain.PageQuery{Status: "RESERVED"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUpdate_RenumberingCollisionIsUniqueViolation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, f.input(1))
	require.NoError(t, err)
	b, err := f.svc.Create(ctx, f.input(2))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, b.ID, f.input(1))
	assert.True(t, errors.Is(err, database.ErrUniqueViolation))

	testutil.Tick()
	in := f.input(5)
	in.Observations = "  con cabina "
	got, err := f.svc.Update(ctx, b.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Number)
	assert.Equal(t, "con cabina", got.Observations)
	assert.True(t, got.UpdatedAt.After(b.UpdatedAt))
}

func TestUpdate_SoldBundleStaysInItsAuction(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	b, err := f.svc.Create(ctx, f.input(1))
	require.NoError(t, err)
	buyer := testutil.Client(t, f.db, "Comprador")
	testutil.Sale(t, f.db, f.auction.ID, buyer.ID, 10, b.ID)

	other := testutil.Auction(t, f.db, "Otro")
	in := f.input(1)
	in.AuctionID = other.ID
	_, err = f.svc.Update(ctx, b.ID, in)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "auction_id", ve.Field)
}

func TestDeleteRestorePurge(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	b, err := f.svc.Create(ctx, f.input(1))
	require.NoError(t, err)
	buyer := testutil.Client(t, f.db, "Comprador")
	sale := testutil.Sale(t, f.db, f.auction.ID, buyer.ID, 10, b.ID)

	require.NoError(t, f.svc.Delete(ctx, b.ID))
	page, err := f.svc.List(ctx, domain.PageQuery{AuctionID: f.auction.ID})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	_, err = f.svc.Restore(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, errors.Is(f.svc.Purge(ctx, b.ID), common.ErrNotRetired))

	require.NoError(t, f.svc.Delete(ctx, b.ID))
	require.NoError(t, f.svc.Purge(ctx, b.ID))

	var details int64
	require.NoError(t, f.db.Model(&domain.SaleDetail{}).Where("sale_id = ?", sale.ID).Count(&details).Error)
	assert.Zero(t, details)
	var sales int64
	require.NoError(t, f.db.Model(&domain.Sale{}).Count(&sales).Error)
	assert.EqualValues(t, 1, sales)
}
