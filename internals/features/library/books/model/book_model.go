// file: internals/features/library/books/model/book_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookModel adalah proyeksi lokal dari entri katalog eksternal (Sanity).
// Hanya field yang dibutuhkan entitlement & indexing yang disimpan;
// deskripsi, cover, dan file konten tetap milik katalog.
// Invariant: maksimal satu row per sanity id (upsert, bukan create-or-fail).
type BookModel struct {
	BookID uuid.UUID `gorm:"type:uuid;primaryKey;column:book_id" json:"book_id"`

	// Join key ke katalog eksternal
	BookSanityID string `gorm:"type:varchar(100);uniqueIndex;not null;column:book_sanity_id" json:"book_sanity_id"`

	BookTitle   string `gorm:"type:varchar(255);not null;column:book_title" json:"book_title"`
	BookSubject string `gorm:"type:varchar(100);column:book_subject" json:"book_subject"`

	BookIsActive bool `gorm:"not null;default:true;column:book_is_active" json:"book_is_active"`
	BookIsPublic bool `gorm:"not null;default:false;column:book_is_public" json:"book_is_public"`

	// Snapshot harga dari katalog (dipakai checkout; katalog tetap source of truth)
	BookPrice              int64             `gorm:"not null;default:0;column:book_price" json:"book_price"`
	BookSubscriptionPrices datatypes.JSONMap `gorm:"column:book_subscription_prices" json:"book_subscription_prices,omitempty"`

	BookCreatedAt time.Time      `gorm:"autoCreateTime;column:book_created_at" json:"book_created_at"`
	BookUpdatedAt time.Time      `gorm:"autoUpdateTime;column:book_updated_at" json:"book_updated_at"`
	BookDeletedAt gorm.DeletedAt `gorm:"column:book_deleted_at;index" json:"book_deleted_at,omitempty"`
}

func (BookModel) TableName() string {
	return "books"
}

func (b *BookModel) BeforeCreate(tx *gorm.DB) error {
	if b.BookID == uuid.Nil {
		b.BookID = uuid.New()
	}
	return nil
}
