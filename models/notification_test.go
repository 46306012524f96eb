package models

import "testing"

func TestQueueNotification(t *testing.T) {
	db := openTestDB(t)
	db.AutoMigrate(&Notification{})

	QueueNotification(db, "Subject", "Body")
	QueueNotificationTo(db, "someone@example.com", "Subject", "Body")

	var rows []Notification
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	for _, row := range rows {
		if row.Status != NOTIFICATION_STATUS_PENDING {
			t.Errorf("status = %d, want pending", row.Status)
		}
	}
	if rows[0].Recipient != "" {
		t.Errorf("group notification recipient = %q, want empty", rows[0].Recipient)
	}
	if rows[1].Recipient != "someone@example.com" {
		t.Errorf("direct notification recipient = %q", rows[1].Recipient)
	}
}

func TestQueueNotificationNilDB(t *testing.T) {
	// Must not panic; queueing is best-effort.
	QueueNotification(nil, "Subject", "Body")
}
