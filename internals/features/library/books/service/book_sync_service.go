// file: internals/features/library/books/service/book_sync_service.go
package service

import (
	"context"
	"errors"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pustakaedu_backend/internals/features/library/books/model"
	"pustakaedu_backend/internals/helpers/errs"
)

// UpsertBook menulis proyeksi lokal dari entri katalog (maksimal satu row per sanity id).
func UpsertBook(db *gorm.DB, cat *CatalogBook) (*model.BookModel, error) {
	prices := datatypes.JSONMap{}
	for k, v := range cat.SubscriptionPrices {
		prices[k] = v
	}

	book := model.BookModel{
		BookSanityID:           cat.ID,
		BookTitle:              cat.Name,
		BookSubject:            cat.Subject,
		BookIsActive:           true,
		BookIsPublic:           cat.IsPublic,
		BookPrice:              cat.Price,
		BookSubscriptionPrices: prices,
	}

	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "book_sanity_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"book_title", "book_subject", "book_is_public", "book_price", "book_subscription_prices",
		}),
	}).Create(&book).Error; err != nil {
		return nil, err
	}

	// Re-read supaya BookID terisi juga saat path conflict (row lama dipertahankan)
	var saved model.BookModel
	if err := db.Where("book_sanity_id = ?", cat.ID).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// EnsureBook mengembalikan proyeksi lokal, membuatnya on-demand dari katalog bila belum ada.
// Alur pembayaran tidak boleh gagal hanya karena proyeksi belum tersinkron.
func EnsureBook(ctx context.Context, db *gorm.DB, catalog CatalogClient, sanityID string) (*model.BookModel, error) {
	var book model.BookModel
	err := db.Where("book_sanity_id = ?", sanityID).First(&book).Error
	if err == nil {
		return &book, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if catalog == nil {
		return nil, errs.ErrNotFound
	}

	cat, err := catalog.FetchBook(ctx, sanityID)
	if err != nil {
		log.Printf("[ERROR] Gagal fetch katalog untuk %s: %v", sanityID, err)
		return nil, err
	}
	return UpsertBook(db, cat)
}
