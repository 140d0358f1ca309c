// file: internals/features/payment/service/plan_window.go
package service

import (
	"time"

	accessModel "pustakaedu_backend/internals/features/library/access/model"
	"pustakaedu_backend/internals/features/payment/model"
	"pustakaedu_backend/internals/helpers/errs"
)

// GrantWindow menghitung window akses dari kombinasi tipe pembelian + plan.
// Kombinasi ini adalah tagged union eksplisit: single_book selalu permanen,
// subscription mengikuti plan-nya.
func GrantWindow(purchaseType model.PurchaseType, plan model.PlanType, now time.Time) (time.Time, time.Time, error) {
	if purchaseType == model.PurchaseSingleBook {
		// Pembelian satu buku = permanen (sentinel, bukan NULL)
		return now, accessModel.LifetimeSentinel, nil
	}

	switch plan {
	case model.PlanLifetime:
		return now, accessModel.LifetimeSentinel, nil
	case model.PlanMonthly:
		return now, now.AddDate(0, 1, 0), nil
	case model.PlanQuarterly:
		// NOTE: "quarterly" sengaja memberi 6 bulan, bukan 3 — aturan bisnis
		// berjalan saat ini. Menunggu konfirmasi product sebelum diubah.
		return now, now.AddDate(0, 6, 0), nil
	case model.PlanAnnual:
		return now, now.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, time.Time{}, errs.ErrValidation
	}
}
