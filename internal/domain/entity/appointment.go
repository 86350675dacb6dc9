package entity

import "time"

// Appointment represents a booked tattoo session between a client and an artist.
// Date and StartTime are wall-clock local values exactly as entered
// ("2006-01-02" and "15:04"); they are only combined into an instant when the
// reminder trigger is computed.
//
// ReminderToken holds the opaque identifier returned by the notification
// delivery channel for the one pending reminder of this appointment, or nil
// when no reminder is scheduled. It is never fabricated: the only writers are
// the reminder lifecycle reconciliation paths.
type Appointment struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientID          uint      `gorm:"column:client_id;index" json:"clientId"`
	ClientName        string    `gorm:"column:client_name" json:"clientName"`
	ArtistID          uint      `gorm:"column:artist_id;index" json:"artistId"`
	ArtistName        string    `gorm:"column:artist_name" json:"artistName"`
	Date              string    `gorm:"column:date" json:"date"`
	StartTime         string    `gorm:"column:start_time" json:"startTime"`
	DesignDescription string    `gorm:"column:design_description;type:text" json:"designDescription"`
	Status            string    `gorm:"column:status" json:"status"`
	ReminderToken     *string   `gorm:"column:reminder_token" json:"reminderToken"`
	CreatedAt         time.Time `json:"createdAt"`
}

// TableName specifies the table name for the Appointment entity.
func (Appointment) TableName() string {
	return "appointments"
}
