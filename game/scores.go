package game

// RoundScores summarises one finished round
type RoundScores struct {
	PlayerScores        map[string]int `json:"playerScores"`
	WinnerID            string         `json:"winnerId"`
	EliminatedPlayerIDs []string       `json:"eliminatedPlayerIds,omitempty"`
}

// GameScores summarises the whole game
type GameScores struct {
	TotalScores     map[string]int `json:"totalScores"`
	GamesWon        map[string]int `json:"gamesWon"`
	OverallWinnerID string         `json:"overallWinnerId"`
}

// RoundScoresFor aggregates the per-round scores. The winner is the
// player who emptied their hand or, failing that, the lowest round
// score.
func RoundScoresFor(players []*Player, eliminationScore int) RoundScores {
	out := RoundScores{
		PlayerScores:        map[string]int{},
		EliminatedPlayerIDs: []string{},
	}
	out.WinnerID = roundWinner(players)
	for _, p := range players {
		out.PlayerScores[p.ID] = p.RoundScore
		if eliminationScore > 0 && p.TotalScore >= eliminationScore {
			out.EliminatedPlayerIDs = append(out.EliminatedPlayerIDs, p.ID)
		}
	}
	return out
}

// GameScoresFor aggregates cumulative scores and determines the
// overall winner: the player with the most rounds won
func GameScoresFor(players []*Player) GameScores {
	out := GameScores{
		TotalScores: map[string]int{},
		GamesWon:    map[string]int{},
	}
	maxWon := -1
	for _, p := range players {
		out.TotalScores[p.ID] = p.TotalScore
		out.GamesWon[p.ID] = p.GamesWon
		if p.GamesWon > maxWon {
			maxWon = p.GamesWon
			out.OverallWinnerID = p.ID
		}
	}
	return out
}

func roundWinner(players []*Player) string {
	for _, p := range players {
		if p.Status != Eliminated && len(p.Hand) == 0 {
			return p.ID
		}
	}
	winnerID := ""
	minScore := -1
	for _, p := range players {
		if minScore == -1 || p.RoundScore < minScore {
			minScore = p.RoundScore
			winnerID = p.ID
		}
	}
	return winnerID
}
