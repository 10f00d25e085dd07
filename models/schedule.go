package models

import "time"

// ScheduledTournament — запланированный турнир с опросом участия.
type ScheduledTournament struct {
	ID            int       `json:"id" db:"id"`
	ChatID        int64     `json:"chat_id" db:"chat_id"`
	Format        Format    `json:"format" db:"format"`
	PollMessageID int64     `json:"poll_message_id,omitempty" db:"poll_message_id"`
	Participants  []int64   `json:"participants" db:"participants"`
	ScheduledTime time.Time `json:"scheduled_time" db:"scheduled_time"`
	Notified      bool      `json:"notified" db:"notified"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Due reports whether the scheduled time has passed and nobody was notified yet.
func (s ScheduledTournament) Due(now time.Time) bool {
	return !s.Notified && !now.Before(s.ScheduledTime)
}
