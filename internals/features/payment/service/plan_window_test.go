// file: internals/features/payment/service/plan_window_test.go
package service

import (
	"errors"
	"testing"
	"time"

	accessModel "pustakaedu_backend/internals/features/library/access/model"
	"pustakaedu_backend/internals/features/payment/model"
	"pustakaedu_backend/internals/helpers/errs"
)

func TestGrantWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name         string
		purchaseType model.PurchaseType
		plan         model.PlanType
		wantEnd      time.Time
	}{
		{"single book permanen", model.PurchaseSingleBook, "", accessModel.LifetimeSentinel},
		{"lifetime permanen", model.PurchaseSubscription, model.PlanLifetime, accessModel.LifetimeSentinel},
		{"monthly", model.PurchaseSubscription, model.PlanMonthly, now.AddDate(0, 1, 0)},
		// quarterly memberi 6 bulan — aturan bisnis berjalan, bukan typo
		{"quarterly enam bulan", model.PurchaseSubscription, model.PlanQuarterly, now.AddDate(0, 6, 0)},
		{"annual", model.PurchaseSubscription, model.PlanAnnual, now.AddDate(1, 0, 0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end, err := GrantWindow(tc.purchaseType, tc.plan, now)
			if err != nil {
				t.Fatalf("window: %v", err)
			}
			if !start.Equal(now) {
				t.Fatalf("start = %v, want %v", start, now)
			}
			if !end.Equal(tc.wantEnd) {
				t.Fatalf("end = %v, want %v", end, tc.wantEnd)
			}
		})
	}
}

func TestGrantWindowUnknownPlan(t *testing.T) {
	_, _, err := GrantWindow(model.PurchaseSubscription, "weekly", time.Now())
	if !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestPriceForSubscriptionPlans(t *testing.T) {
	prices := map[string]interface{}{
		"monthly": float64(25000), // JSONMap round-trip menyimpan angka sebagai float64
		"annual":  int64(200000),
	}

	got, err := priceFor(0, prices, model.PurchaseSubscription, model.PlanMonthly)
	if err != nil || got != 25000 {
		t.Fatalf("monthly = %d, %v; want 25000", got, err)
	}

	got, err = priceFor(0, prices, model.PurchaseSubscription, model.PlanAnnual)
	if err != nil || got != 200000 {
		t.Fatalf("annual = %d, %v; want 200000", got, err)
	}

	if _, err := priceFor(0, prices, model.PurchaseSubscription, model.PlanQuarterly); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("plan tak tersedia harus ErrValidation, got %v", err)
	}

	got, err = priceFor(75000, nil, model.PurchaseSingleBook, "")
	if err != nil || got != 75000 {
		t.Fatalf("single book = %d, %v; want 75000", got, err)
	}
	if _, err := priceFor(0, nil, model.PurchaseSingleBook, ""); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("harga 0 harus ErrValidation, got %v", err)
	}
}
