package reports

import (
	"context"
	"math"
	"time"

	"remate/internal/application/common"
	"remate/internal/domain"

	"gorm.io/gorm"
)

// CommissionRate is charged on both sides of every sale.
const CommissionRate = 0.10

type Service struct {
	DB *gorm.DB
}

type BundleRow struct {
	BundleID uint                `json:"bundle_id"`
	Number   int                 `json:"number"`
	Name     string              `json:"name"`
	SellerID uint                `json:"seller_id"`
	Seller   string              `json:"seller"`
	Status   domain.BundleStatus `json:"status"`
}

// ClientBalance aggregates what a client sold, bought, was paid and paid
// in one auction. Sales are settled net of commission: the seller gets
// 90% and the buyer owes 110%. Balance is what the house owes the
// client; negative means the client owes the house.
type ClientBalance struct {
	ClientID       uint    `json:"client_id"`
	Company        string  `json:"company"`
	TotalSold      float64 `json:"total_sold"`
	TotalSpent     float64 `json:"total_spent"`
	TotalPaid      float64 `json:"total_paid"`
	TotalCollected float64 `json:"total_collected"`
	Commission     float64 `json:"commission"`
	Balance        float64 `json:"balance"`
}

type Summary struct {
	AuctionID           uint    `json:"auction_id"`
	Sales               int64   `json:"sales"`
	TotalSold           float64 `json:"total_sold"`
	SoldCommission      float64 `json:"sold_commission"`
	PurchasedCommission float64 `json:"purchased_commission"`
	TotalEarned         float64 `json:"total_earned"`
}

type Purchase struct {
	SaleID     uint      `json:"sale_id"`
	BundleID   uint      `json:"bundle_id"`
	Number     int       `json:"number"`
	Name       string    `json:"name"`
	TotalPrice float64   `json:"total_price"`
	Deadline   time.Time `json:"deadline"`
}

type SellerSale struct {
	SaleID      uint      `json:"sale_id"`
	BundleID    uint      `json:"bundle_id"`
	Number      int       `json:"number"`
	Name        string    `json:"name"`
	Company     string    `json:"company"`
	TotalPrice  float64   `json:"total_price"`
	Deadline    time.Time `json:"deadline"`
	AuctionDate time.Time `json:"auction_date"`
}

func (s *Service) requireAuction(db *gorm.DB, id uint) error {
	var a domain.Auction
	return common.First(db.Unscoped(), &a, "auction", id)
}

const bundlesSQL = `
SELECT b.id AS bundle_id, b.number, b.name, c.id AS seller_id, c.company AS seller,
    CASE WHEN EXISTS (
        SELECT 1 FROM sales_details sd JOIN sales s ON s.id = sd.sale_id
        WHERE sd.bundle_id = b.id AND s.deleted = 0
    ) THEN 'SOLD' ELSE 'FOR_SALE' END AS status
FROM bundle b
JOIN client c ON c.id = b.seller_id
WHERE b.auction_id = ? AND b.deleted = 0
ORDER BY b.number ASC`

// AuctionBundles lists the live bundles of an auction with their seller
// and sale status.
func (s *Service) AuctionBundles(ctx context.Context, auctionID uint) ([]BundleRow, error) {
	db := s.DB.WithContext(ctx)
	if err := s.requireAuction(db, auctionID); err != nil {
		return nil, err
	}
	out := []BundleRow{}
	if err := db.Raw(bundlesSQL, auctionID).Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// participants selects the clients selling or buying in @auction.
const participants = `
FROM client c
WHERE EXISTS (SELECT 1 FROM bundle b WHERE b.seller_id = c.id AND b.auction_id = @auction AND b.deleted = 0)
   OR EXISTS (SELECT 1 FROM sales s WHERE s.buyer_id = c.id AND s.auction_id = @auction AND s.deleted = 0)`

const balancesSQL = `
SELECT c.id AS client_id, c.company,
    COALESCE((SELECT SUM(s.total_price) FROM sales s
        WHERE s.auction_id = @auction AND s.deleted = 0 AND s.id IN (
            SELECT sd.sale_id FROM sales_details sd JOIN bundle b ON b.id = sd.bundle_id
            WHERE b.seller_id = c.id AND b.deleted = 0)), 0) AS total_sold,
    COALESCE((SELECT SUM(s.total_price) FROM sales s
        WHERE s.auction_id = @auction AND s.deleted = 0 AND s.buyer_id = c.id), 0) AS total_spent,
    COALESCE((SELECT SUM(t.amount) FROM transactions t
        WHERE t.auction_id = @auction AND t.deleted = 0 AND t.client_id = c.id AND t.type = 'PAYMENT'), 0) AS total_paid,
    COALESCE((SELECT SUM(t.amount) FROM transactions t
        WHERE t.auction_id = @auction AND t.deleted = 0 AND t.client_id = c.id AND t.type = 'COLLECTION'), 0) AS total_collected
` + participants + `
ORDER BY c.company ASC
LIMIT @limit OFFSET @offset`

// AuctionClientBalances pages the balances of every client taking part in
// the auction. Deleted clients still appear so past auctions add up.
func (s *Service) AuctionClientBalances(ctx context.Context, auctionID uint, q domain.PageQuery) (domain.Page[ClientBalance], error) {
	q = q.Normalize()
	db := s.DB.WithContext(ctx)
	if err := s.requireAuction(db, auctionID); err != nil {
		return domain.Page[ClientBalance]{}, err
	}
	args := map[string]interface{}{"auction": auctionID, "limit": q.PageSize, "offset": q.Offset()}

	var total int64
	if err := db.Raw("SELECT COUNT(*) "+participants, args).Scan(&total).Error; err != nil {
		return domain.Page[ClientBalance]{}, err
	}
	var rows []ClientBalance
	if err := db.Raw(balancesSQL, args).Scan(&rows).Error; err != nil {
		return domain.Page[ClientBalance]{}, err
	}
	for i := range rows {
		r := &rows[i]
		owed := r.TotalSold * (1 - CommissionRate)
		due := r.TotalSpent * (1 + CommissionRate)
		r.Commission = round((r.TotalSold + r.TotalSpent) * CommissionRate)
		r.Balance = round((owed - r.TotalPaid) - (due - r.TotalCollected))
	}
	return domain.NewPage(rows, total, q), nil
}

// AuctionSummary totals the live sales of an auction and the commission
// earned on them.
func (s *Service) AuctionSummary(ctx context.Context, auctionID uint) (*Summary, error) {
	db := s.DB.WithContext(ctx)
	if err := s.requireAuction(db, auctionID); err != nil {
		return nil, err
	}
	var agg struct {
		Sales     int64
		TotalSold float64
	}
	if err := db.Model(&domain.Sale{}).
		Select("COUNT(*) AS sales, COALESCE(SUM(total_price), 0) AS total_sold").
		Where("auction_id = ?", auctionID).
		Scan(&agg).Error; err != nil {
		return nil, err
	}
	sold := round(agg.TotalSold * CommissionRate)
	purchased := round(agg.TotalSold * CommissionRate)
	return &Summary{
		AuctionID:           auctionID,
		Sales:               agg.Sales,
		TotalSold:           agg.TotalSold,
		SoldCommission:      sold,
		PurchasedCommission: purchased,
		TotalEarned:         round(sold + purchased),
	}, nil
}

const purchasesSQL = `
SELECT s.id AS sale_id, b.id AS bundle_id, b.number, b.name, s.total_price, s.deadline
FROM sales s
JOIN sales_details sd ON sd.sale_id = s.id
JOIN bundle b ON b.id = sd.bundle_id
WHERE s.auction_id = ? AND s.buyer_id = ? AND s.deleted = 0
ORDER BY s.id ASC, b.number ASC`

// ClientPurchases lists the bundles a client bought in an auction.
func (s *Service) ClientPurchases(ctx context.Context, auctionID, clientID uint) ([]Purchase, error) {
	db := s.DB.WithContext(ctx)
	if err := s.requireAuction(db, auctionID); err != nil {
		return nil, err
	}
	out := []Purchase{}
	if err := db.Raw(purchasesSQL, auctionID, clientID).Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

const sellerSalesSQL = `
SELECT s.id AS sale_id, b.id AS bundle_id, b.number, b.name, c.company,
    s.total_price, s.deadline, a.date AS auction_date
FROM bundle b
JOIN sales_details sd ON sd.bundle_id = b.id
JOIN sales s ON s.id = sd.sale_id AND s.auction_id = b.auction_id
JOIN client c ON c.id = b.seller_id
JOIN auction a ON a.id = b.auction_id
WHERE b.auction_id = ? AND b.seller_id = ? AND b.deleted = 0 AND s.deleted = 0
ORDER BY b.number ASC`

// SellerSales lists the sold bundles a client put up in an auction, with
// the price of the sale each one went in.
func (s *Service) SellerSales(ctx context.Context, auctionID, sellerID uint) ([]SellerSale, error) {
	db := s.DB.WithContext(ctx)
	if err := s.requireAuction(db, auctionID); err != nil {
		return nil, err
	}
	out := []SellerSale{}
	if err := db.Raw(sellerSalesSQL, auctionID, sellerID).Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
