package clients

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
)

func newService(t *testing.T) *Service {
	return &Service{DB: testutil.OpenStore(t)}
}

func validInput(company string) Input {
	return Input{
		Company:  company,
		Email:    "compras@" + "agro.com.ar",
		Phone:    "0358 462-1100",
		Province: "Córdoba",
		City:     "Río Cuarto",
	}
}

func TestCreate_ReturnsStoreTimestamps(t *testing.T) {
	svc := newService(t)
	c, err := svc.Create(context.Background(), validInput("  Agro Sur SA "))
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "Agro Sur SA", c.Company)
	assert.False(t, c.CreatedAt.IsZero())
	assert.Equal(t, c.CreatedAt, c.UpdatedAt)
	assert.False(t, c.IsDeleted())
}

func TestCreate_DuplicateCompanyIsUniqueViolation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, validInput("Agro Sur SA"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, validInput("Agro Sur SA"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, database.ErrUniqueViolation))
	var ce *database.ConstraintError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "client.company", ce.Constraint)
}

func TestCreate_ValidatesInput(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	cases := map[string]func(*Input){
		"company":  func(in *Input) { in.Company = " " },
		"city":     func(in *Input) { in.City = "" },
		"email":    func(in *Input) { in.Email = "not-an-email" },
		"phone":    func(in *Input) { in.Phone = "123" },
		"province": func(in *Input) { in.Province = "Atlantis" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			in := validInput("Agro " + field)
			mutate(&in)
			_, err := svc.Create(ctx, in)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, field, ve.Field)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

func TestUpdate_AdvancesUpdatedAtOnly(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, validInput("Agro Sur SA"))
	require.NoError(t, err)

	testutil.Tick()
	in := validInput("Agro Sur SRL")
	in.Province = "Santa Fe"
	got, err := svc.Update(ctx, c.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Agro Sur SRL", got.Company)
	assert.Equal(t, "Santa Fe", got.Province)
	assert.Equal(t, c.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(c.UpdatedAt))
}

func TestUpdate_MissingClient(t *testing.T) {
	svc := newService(t)
	_, err := svc.Update(context.Background(), 99, validInput("Nadie"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDelete_HidesClientUntilRestored(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, validInput("Agro Sur SA"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.ID))
	_, err = svc.Get(ctx, c.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(svc.Delete(ctx, c.ID), domain.ErrNotFound))

	page, err := svc.List(ctx, domain.PageQuery{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)

	page, err = svc.List(ctx, domain.PageQuery{IncludeDeleted: true})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].IsDeleted())

	restored, err := svc.Restore(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted())
	assert.True(t, errors.Is(func() error { _, err := svc.Restore(ctx, c.ID); return err }(), domain.ErrNotFound))
}

func TestPurge_RequiresSoftDeleteAndCascades(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	seller, err := svc.Create(ctx, validInput("Vendedor SA"))
	require.NoError(t, err)
	buyer, err := svc.Create(ctx, validInput("Comprador SA"))
	require.NoError(t, err)
	auction := testutil.Auction(t, svc.DB, "Otoño")
	bundle := testutil.Bundle(t, svc.DB, auction.ID, seller.ID, 1)
	sale := testutil.Sale(t, svc.DB, auction.ID, buyer.ID, 500, bundle.ID)
	testutil.Transaction(t, svc.DB, auction.ID, seller.ID, 100, domain.TransactionPayment)

	err = svc.Purge(ctx, seller.ID)
	assert.True(t, errors.Is(err, common.ErrNotRetired))

	require.NoError(t, svc.Delete(ctx, seller.ID))
	require.NoError(t, svc.Purge(ctx, seller.ID))

	var n int64
	require.NoError(t, svc.DB.Unscoped().Model(&domain.Bundle{}).Where("seller_id = ?", seller.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, svc.DB.Unscoped().Model(&domain.Transaction{}).Where("client_id = ?", seller.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, svc.DB.Model(&domain.SaleDetail{}).Where("sale_id = ?", sale.ID).Count(&n).Error)
	assert.Zero(t, n)

	require.NoError(t, svc.Delete(ctx, buyer.ID))
	require.NoError(t, svc.Purge(ctx, buyer.ID))
	var kept domain.Sale
	require.NoError(t, svc.DB.First(&kept, sale.ID).Error)
	assert.Nil(t, kept.BuyerID)

	assert.True(t, errors.Is(svc.Purge(ctx, buyer.ID), domain.ErrNotFound))
}

func TestList_FiltersAndPages(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	for _, name := range []string{"Delta Agro", "Alfa Campo", "Charlie Rural", "Bravo Semillas"} {
		_, err := svc.Create(ctx, validInput(name))
		require.NoError(t, err)
	}
	in := validInput("Eco Tractores")
	in.Province = "Entre Ríos"
	_, err := svc.Create(ctx, in)
	require.NoError(t, err)

	page, err := svc.List(ctx, domain.PageQuery{PageSize: 2, Page: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Charlie Rural", page.Items[0].Company)

	page, err = svc.List(ctx, domain.PageQuery{Search: "agro"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Delta Agro", page.Items[0].Company)

	page, err = svc.List(ctx, domain.PageQuery{Province: "Entre Ríos"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Eco Tractores", page.Items[0].Company)
}

func TestSearch_RanksFuzzyMatches(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	for _, name := range []string{"La Tranquera SA", "Tractores del Sur", "Transportes Rurales"} {
		_, err := svc.Create(ctx, validInput(name))
		require.NoError(t, err)
	}

	got, err := svc.Search(ctx, "tractsur", 5)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "Tractores del Sur", got[0].Company)

	got, err = svc.Search(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "La Tranquera SA", got[0].Company)

	got, err = svc.Search(ctx, "zzz", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListSellers_OnlyOwnersOfLiveBundles(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	a := testutil.Auction(t, svc.DB, "Primavera")
	other := testutil.Auction(t, svc.DB, "Invierno")
	s1 := testutil.Client(t, svc.DB, "Vendedor Uno")
	s2 := testutil.Client(t, svc.DB, "Vendedor Dos")
	s3 := testutil.Client(t, svc.DB, "Vendedor Tres")
	testutil.Bundle(t, svc.DB, a.ID, s1.ID, 1)
	testutil.Bundle(t, svc.DB, a.ID, s1.ID, 2)
	gone := testutil.Bundle(t, svc.DB, a.ID, s2.ID, 3)
	testutil.Bundle(t, svc.DB, other.ID, s3.ID, 1)
	require.NoError(t, svc.DB.Delete(&domain.Bundle{}, gone.ID).Error)

	got, err := svc.ListSellers(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, s1.ID, got[0].ID)
}
