// file: internals/features/payment/service/checkout_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookService "pustakaedu_backend/internals/features/library/books/service"
	"pustakaedu_backend/internals/features/payment/model"
	userService "pustakaedu_backend/internals/features/users/user/service"
	"pustakaedu_backend/internals/helpers/errs"
)

type CheckoutInput struct {
	UserID       uuid.UUID
	BookSanityID string
	PurchaseType model.PurchaseType
	Plan         model.PlanType
	CouponCode   string
}

type CheckoutResult struct {
	OrderID     string `json:"order_id"`
	SnapToken   string `json:"snap_token"`
	RedirectURL string `json:"redirect_url"`
	Amount      int64  `json:"amount"`
	Discount    int64  `json:"discount"`
}

// CreateCheckout membuat sesi pembayaran Midtrans + transaksi PENDING.
// Urutan penting: sesi Snap dibuat DULU — kalau Midtrans gagal, tidak boleh
// ada row PENDING yatim yang tertinggal.
func CreateCheckout(ctx context.Context, db *gorm.DB, catalog bookService.CatalogClient, in CheckoutInput) (*CheckoutResult, error) {
	resolved, err := userService.ResolveByID(db, in.UserID)
	if err != nil {
		return nil, err
	}

	// Proyeksi buku di-sync on demand dari katalog
	book, err := bookService.EnsureBook(ctx, db, catalog, in.BookSanityID)
	if err != nil {
		return nil, err
	}
	if !book.BookIsActive {
		return nil, errs.ErrNotFound
	}
	if book.BookIsPublic {
		return nil, fmt.Errorf("%w: buku gratis tidak perlu dibeli", errs.ErrValidation)
	}

	gross, err := priceFor(book.BookPrice, book.BookSubscriptionPrices, in.PurchaseType, in.Plan)
	if err != nil {
		return nil, err
	}

	discount, couponCode, err := applyCoupon(db, in.CouponCode, gross)
	if err != nil {
		return nil, err
	}
	final := gross - discount

	orderID := fmt.Sprintf("PUSTAKA-%s-%d", in.PurchaseType, time.Now().UnixNano())

	token, redirectURL, midErr := GenerateSnapToken(orderID, final, resolved.User.UserName, resolved.User.UserEmail)
	if midErr != nil {
		log.Printf("[ERROR] Gagal membuat sesi Snap untuk %s: %v", orderID, midErr)
		return nil, fmt.Errorf("%w: midtrans: %v", errs.ErrExternalService, midErr)
	}

	trx := model.TransactionModel{
		TransactionOrderID:      orderID,
		TransactionUserID:       in.UserID,
		TransactionBookSanityID: in.BookSanityID,
		TransactionPurchaseType: in.PurchaseType,
		TransactionPlan:         in.Plan,
		TransactionGrossAmount:  final,
		TransactionDiscount:     discount,
		TransactionCouponCode:   couponCode,
		TransactionStatus:       model.TransactionPending,
		TransactionSnapToken:    token,
	}
	if err := db.Create(&trx).Error; err != nil {
		return nil, err
	}

	return &CheckoutResult{
		OrderID:     orderID,
		SnapToken:   token,
		RedirectURL: redirectURL,
		Amount:      final,
		Discount:    discount,
	}, nil
}

func priceFor(bookPrice int64, subPrices map[string]interface{}, purchaseType model.PurchaseType, plan model.PlanType) (int64, error) {
	if purchaseType == model.PurchaseSingleBook {
		if bookPrice <= 0 {
			return 0, fmt.Errorf("%w: harga buku belum diset", errs.ErrValidation)
		}
		return bookPrice, nil
	}

	raw, ok := subPrices[string(plan)]
	if !ok {
		return 0, fmt.Errorf("%w: plan %s tidak tersedia untuk buku ini", errs.ErrValidation, plan)
	}
	// JSONMap menyimpan angka sebagai float64
	switch v := raw.(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: harga plan %s tidak valid", errs.ErrValidation, plan)
	}
}

func applyCoupon(db *gorm.DB, code string, gross int64) (int64, *string, error) {
	if code == "" {
		return 0, nil, nil
	}

	var coupon model.CouponModel
	err := db.Where("coupon_code = ? AND coupon_is_active = ?", code, true).First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil, fmt.Errorf("%w: kupon %s tidak ditemukan", errs.ErrValidation, code)
	}
	if err != nil {
		return 0, nil, err
	}
	if coupon.CouponExpiresAt != nil && time.Now().After(*coupon.CouponExpiresAt) {
		return 0, nil, fmt.Errorf("%w: kupon %s sudah kadaluarsa", errs.ErrValidation, code)
	}

	discount := gross * int64(coupon.CouponPercent) / 100
	return discount, &coupon.CouponCode, nil
}
