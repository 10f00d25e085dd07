package models

import (
	"fmt"
	"strings"
	"time"
)

// TournamentStatus представляет статусы турнира.
type TournamentStatus string

const (
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusFinished     TournamentStatus = "finished"
	StatusCanceled     TournamentStatus = "canceled"
)

// Format — формат боя: размер стороны в каждом матче.
type Format string

const (
	Format1v1 Format = "1v1"
	Format2v2 Format = "2v2"
	Format3v3 Format = "3v3"
)

func ValidFormat(f Format) bool {
	switch f {
	case Format1v1, Format2v2, Format3v3:
		return true
	}
	return false
}

// TeamSize returns how many players stand on one side of a match.
func (f Format) TeamSize() int {
	switch f {
	case Format2v2:
		return 2
	case Format3v3:
		return 3
	default:
		return 1
	}
}

// MinParticipants — минимум игроков для старта в этом формате.
func (f Format) MinParticipants() int {
	switch f {
	case Format2v2:
		return 4
	case Format3v3:
		return 6
	default:
		return 2
	}
}

// MaxParticipants returns the roster cap, 0 meaning unlimited.
func (f Format) MaxParticipants() int {
	switch f {
	case Format2v2:
		return 12
	case Format3v3:
		return 18
	default:
		return 0
	}
}

// Tournament — живое состояние турнира одного чата.
type Tournament struct {
	ChatID       int64            `json:"chat_id"`
	Format       Format           `json:"format"`
	WinsNeeded   int              `json:"wins_needed"`
	Status       TournamentStatus `json:"status"`
	CreatorID    int64            `json:"creator_id"`
	Modes        []string         `json:"modes,omitempty"`
	Maps         []GameMap        `json:"maps,omitempty"`
	Participants []Player         `json:"participants"`
	Rounds       []Round          `json:"rounds,omitempty"`
	CurrentRound int              `json:"current_round"`
	Placements   *Placements      `json:"placements,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	FinishedAt   *time.Time       `json:"finished_at,omitempty"`
}

// ActiveRound returns the round currently being played, nil before start.
func (t *Tournament) ActiveRound() *Round {
	for i := range t.Rounds {
		if t.Rounds[i].Number == t.CurrentRound {
			return &t.Rounds[i]
		}
	}
	return nil
}

// GameMap — карта, разыгрываемая в одном из выбранных режимов.
type GameMap struct {
	Mode        string `json:"mode"`
	Name        string `json:"name"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description,omitempty"`
}

// Placements — итоговые места турнира.
type Placements struct {
	First  Team  `json:"first"`
	Second Team  `json:"second"`
	Third  *Team `json:"third,omitempty"`
}

// TournamentRecord — персистентная запись турнира для истории и статистики.
type TournamentRecord struct {
	ID         int              `json:"id" db:"id"`
	ChatID     int64            `json:"chat_id" db:"chat_id"`
	Format     Format           `json:"format" db:"format"`
	WinsNeeded int              `json:"wins_needed" db:"wins_needed"`
	Status     TournamentStatus `json:"status" db:"status"`
	Modes      []string         `json:"modes" db:"modes"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
	FinishedAt *time.Time       `json:"finished_at,omitempty" db:"finished_at"`
}

// Team — одна сторона матча. В формате 1v1 состоит из одного игрока.
type Team struct {
	Members []Player `json:"members"`
}

func (t Team) Size() int { return len(t.Members) }

// Contains reports whether the player stands on this side.
func (t Team) Contains(playerID int64) bool {
	for _, m := range t.Members {
		if m.ID == playerID {
			return true
		}
	}
	return false
}

// Label — человекочитаемое имя стороны для сообщений и логов.
func (t Team) Label() string {
	names := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		if m.Username != "" {
			names = append(names, "@"+m.Username)
			continue
		}
		names = append(names, m.FirstName)
	}
	return strings.Join(names, " & ")
}

// RoundName follows the round_N naming the bracket uses internally.
func RoundName(n int) string {
	return fmt.Sprintf("round_%d", n)
}
