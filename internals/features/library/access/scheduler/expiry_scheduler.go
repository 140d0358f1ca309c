// file: internals/features/library/access/scheduler/expiry_scheduler.go
package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	accessService "pustakaedu_backend/internals/features/library/access/service"
	notifService "pustakaedu_backend/internals/features/notifications/service"
)

// StartAccessExpiryScheduler menjalankan sweep berkala di luar request flow.
func StartAccessExpiryScheduler(db *gorm.DB) {
	go func() {
		// Interval dari env (default: 1 jam)
		intervalMinutes := 60
		if val := os.Getenv("ACCESS_SWEEP_INTERVAL_MINUTES"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalMinutes = parsed
			}
		}

		// Window peringatan "akses hampir habis" (default: 7 hari)
		warningDays := 7
		if val := os.Getenv("ACCESS_EXPIRY_WARNING_DAYS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				warningDays = parsed
			}
		}

		for {
			log.Println("[SWEEP] Menjalankan expiry sweep book_accesses...")

			result, err := accessService.SweepExpiredAccesses(db, time.Now())
			if err != nil {
				log.Printf("[SWEEP ERROR] Gagal sweep: %v", err)
			} else if result.ExpiredCount > 0 {
				log.Printf("[SWEEP] %d akses kadaluarsa ditransisikan ke EXPIRED", result.ExpiredCount)
				// Notifikasi fire-and-forget — gagal kirim tidak membatalkan transisi
				for _, userID := range result.AffectedUsers {
					notifService.Enqueue(db, userID, notifService.TypeAccessExpired, map[string]interface{}{
						"expired_at": time.Now(),
					})
				}
			} else {
				log.Println("[SWEEP] Tidak ada akses yang kadaluarsa")
			}

			sent, err := accessService.SweepExpiringAccesses(db, time.Now(), time.Duration(warningDays)*24*time.Hour)
			if err != nil {
				log.Printf("[SWEEP ERROR] Gagal kirim peringatan akses hampir habis: %v", err)
			} else if sent > 0 {
				log.Printf("[SWEEP] %d peringatan akses hampir habis terkirim", sent)
			}

			time.Sleep(time.Duration(intervalMinutes) * time.Minute)
		}
	}()
}
