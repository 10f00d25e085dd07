package models

// Side указывает, какая сторона матча выиграла игру.
type Side string

const (
	SideTeam1 Side = "team1"
	SideTeam2 Side = "team2"
)

func ValidSide(s Side) bool {
	return s == SideTeam1 || s == SideTeam2
}

// Match — пара сторон внутри одного раунда. ID локален для раунда
// (нулевой индекс в порядке генерации) и не уникален между раундами.
type Match struct {
	ID     int   `json:"id"`
	Round  int   `json:"round"`
	Team1  Team  `json:"team1"`
	Team2  Team  `json:"team2"`
	Winner *Side `json:"winner,omitempty"`
}

// Decided reports whether the match already has a winner.
func (m Match) Decided() bool { return m.Winner != nil }

// WinnerTeam returns the winning side, zero Team when undecided.
func (m Match) WinnerTeam() Team {
	if m.Winner == nil {
		return Team{}
	}
	if *m.Winner == SideTeam1 {
		return m.Team1
	}
	return m.Team2
}

// LoserTeam returns the losing side, zero Team when undecided.
func (m Match) LoserTeam() Team {
	if m.Winner == nil {
		return Team{}
	}
	if *m.Winner == SideTeam1 {
		return m.Team2
	}
	return m.Team1
}

// MatchScore — счёт одного матча в серии до WinsNeeded побед.
type MatchScore struct {
	Team1Wins int `json:"team1_wins"`
	Team2Wins int `json:"team2_wins"`
}

// Round — один раунд сетки со своими матчами.
type Round struct {
	Number  int     `json:"number"`
	Name    string  `json:"name"`
	Matches []Match `json:"matches"`
}

// AllDecided reports whether every match of the round has a winner.
func (r Round) AllDecided() bool {
	for _, m := range r.Matches {
		if !m.Decided() {
			return false
		}
	}
	return len(r.Matches) > 0
}

// Winners возвращает победителей в порядке матчей раунда.
func (r Round) Winners() []Team {
	winners := make([]Team, 0, len(r.Matches))
	for _, m := range r.Matches {
		if m.Decided() {
			winners = append(winners, m.WinnerTeam())
		}
	}
	return winners
}

// MatchResult — персистентная запись решённого матча.
type MatchResult struct {
	ID           int    `json:"id" db:"id"`
	TournamentID int    `json:"tournament_id" db:"tournament_id"`
	Round        int    `json:"round" db:"round"`
	MatchID      int    `json:"match_id" db:"match_id"`
	Team1        string `json:"team1" db:"team1"`
	Team2        string `json:"team2" db:"team2"`
	Winner       Side   `json:"winner" db:"winner"`
}
