package scope

import "gorm.io/gorm"

func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

func OrderByReminderTimeAsc(db *gorm.DB) *gorm.DB {
	return db.Order("reminder_time ASC").Order("created_at ASC")
}

func Unread(db *gorm.DB) *gorm.DB {
	return db.Where("is_read = ?", false)
}
