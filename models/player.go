package models

import "time"

// PlayerRole — роли игроков, соответствуют ENUM в БД.
type PlayerRole string

const (
	RoleUser      PlayerRole = "user"
	RoleModerator PlayerRole = "moderator"
	RoleAdmin     PlayerRole = "admin"
	RoleOwner     PlayerRole = "owner"
)

// Weight returns the privilege level of a role. Higher wins.
func (r PlayerRole) Weight() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleModerator:
		return 1
	default:
		return 0
	}
}

func (r PlayerRole) AtLeast(min PlayerRole) bool {
	return r.Weight() >= min.Weight()
}

func ValidRole(r PlayerRole) bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// Player представляет игрока (идентификатор приходит от чат-платформы).
type Player struct {
	ID             int64      `json:"id" db:"id"`
	Username       string     `json:"username" db:"username"`
	FirstName      string     `json:"first_name" db:"first_name"`
	Role           PlayerRole `json:"role" db:"role"`
	Wins           int        `json:"wins" db:"wins"`
	Participations int        `json:"participations" db:"participations"`
	XP             int        `json:"xp" db:"xp"`
	Trophies       int        `json:"trophies" db:"trophies"`
	Clan           string     `json:"clan" db:"clan"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// Rank по количеству опыта.
func (p Player) Rank() string {
	return RankByXP(p.XP)
}

// WinRate in whole percent, 0 when the player never participated.
func (p Player) WinRate() int {
	if p.Participations == 0 {
		return 0
	}
	return int(float64(p.Wins)/float64(p.Participations)*100 + 0.5)
}

const (
	RankRookie  = "Rookie"
	RankAmateur = "Amateur"
	RankExpert  = "Expert"
	RankMaster  = "Master"
	RankLegend  = "Legend"
)

func RankByXP(xp int) string {
	switch {
	case xp >= 1000:
		return RankLegend
	case xp >= 500:
		return RankMaster
	case xp >= 200:
		return RankExpert
	case xp >= 50:
		return RankAmateur
	default:
		return RankRookie
	}
}
