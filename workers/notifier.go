package workers

import (
	"log"
	"time"

	"machcrm/config"
	"machcrm/mailer"
	"machcrm/models"

	"github.com/jinzhu/gorm"
)

// StartNotifier drains the notification outbox: handlers queue rows inside
// their own request, the loop here sends them afterwards. It also purges OTP
// rows that fell out of the validity window.
func StartNotifier(db *gorm.DB, cfg config.Configuration) {
	sender := mailer.New(cfg)
	window := time.Duration(cfg.Security.OtpValidMinutes) * time.Minute

	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			processPendingNotifications(db, sender)
			if n, err := models.PurgeExpiredOTPs(db, window); err != nil {
				log.Printf("notifier: otp purge error: %v", err)
			} else if n > 0 {
				log.Printf("notifier: purged %d expired otp rows", n)
			}
		}
	}()
}

func processPendingNotifications(db *gorm.DB, sender *mailer.Mailer) {
	var pending []models.Notification
	if err := db.
		Where("status = ?", models.NOTIFICATION_STATUS_PENDING).
		Order("id asc").
		Limit(50).
		Find(&pending).Error; err != nil {
		log.Printf("notifier: query error: %v", err)
		return
	}

	for _, n := range pending {
		// Optimistic lock: only the goroutine that flips the status sends.
		res := db.Model(&models.Notification{}).
			Where("id = ? AND status = ?", n.ID, models.NOTIFICATION_STATUS_PENDING).
			Update("status", models.NOTIFICATION_STATUS_PROCESSING)
		if res.Error != nil || res.RowsAffected == 0 {
			continue
		}

		status := models.NOTIFICATION_STATUS_DONE
		if err := sender.Send(n.Recipient, n.Subject, n.Body); err != nil {
			log.Printf("notifier: send error for notification %d: %v", n.ID, err)
			status = models.NOTIFICATION_STATUS_FAILED
		}

		now := time.Now()
		if err := db.Model(&models.Notification{}).
			Where("id = ?", n.ID).
			Updates(map[string]any{"status": status, "processed_at": &now}).Error; err != nil {
			log.Printf("notifier: status update error for notification %d: %v", n.ID, err)
		}
	}
}
