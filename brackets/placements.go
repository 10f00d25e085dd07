package brackets

import (
	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
)

// XP, начисляемый за места 1..3.
var XPRewards = map[int]int{
	1: 100,
	2: 75,
	3: 50,
}

// ResolvePlacements определяет призёров по сыгранной сетке.
// Возвращает nil, если финальный раунд ещё не решён.
//
// Первое место берёт победитель финала, второе — его соперник.
// Третье достаётся проигравшему ПЕРВОГО полуфинального матча; остальным
// полуфиналистам место не присуждается. Когда полуфинала не было и
// формат 1v1, третьим становится первый зарегистрированный участник,
// не попавший в финал.
func ResolvePlacements(t *models.Tournament) *models.Placements {
	final := finalRound(t.Rounds)
	if final == nil {
		return nil
	}

	var placements *models.Placements
	for _, m := range final.Matches {
		if m.Decided() {
			placements = &models.Placements{
				First:  m.WinnerTeam(),
				Second: m.LoserTeam(),
			}
			break
		}
	}
	if placements == nil {
		return nil
	}

	if final.Number > 1 {
		if semi := roundByNumber(t.Rounds, final.Number-1); semi != nil {
			for _, m := range semi.Matches {
				if m.Decided() {
					loser := m.LoserTeam()
					placements.Third = &loser
					break
				}
			}
		}
		return placements
	}

	// Без полуфинала третье место возможно только в 1v1: первый из
	// зарегистрированных, кто не играл в финале.
	if t.Format == models.Format1v1 {
		finalists := make(map[int64]bool)
		for _, m := range final.Matches {
			for _, p := range m.Team1.Members {
				finalists[p.ID] = true
			}
			for _, p := range m.Team2.Members {
				finalists[p.ID] = true
			}
		}
		for _, p := range t.Participants {
			if !finalists[p.ID] {
				placements.Third = &models.Team{Members: []models.Player{p}}
				break
			}
		}
	}
	return placements
}

func finalRound(rounds []models.Round) *models.Round {
	var final *models.Round
	for i := range rounds {
		if final == nil || rounds[i].Number > final.Number {
			final = &rounds[i]
		}
	}
	return final
}

func roundByNumber(rounds []models.Round, number int) *models.Round {
	for i := range rounds {
		if rounds[i].Number == number {
			return &rounds[i]
		}
	}
	return nil
}
