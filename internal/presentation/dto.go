// Package presentation turns catalog and replay data into CLI output.
package presentation

import (
	"github.com/zjrosen/helixdojo/internal/challenge"
	"github.com/zjrosen/helixdojo/internal/scoring"
)

// ChallengeDTO represents a challenge for presentation
type ChallengeDTO struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Difficulty        string   `json:"difficulty"`
	Category          string   `json:"category"`
	Initial           string   `json:"initial"`
	Target            string   `json:"target"`
	Hints             []string `json:"hints"`
	OptimalKeystrokes int      `json:"optimal_keystrokes"`
	Source            string   `json:"source"`
}

// ReplayDTO is the outcome of running a key script against a challenge.
type ReplayDTO struct {
	ChallengeID       string   `json:"challenge_id"`
	Keys              []string `json:"keys"`
	Completed         bool     `json:"completed"`
	Keystrokes        int      `json:"keystrokes"`
	OptimalKeystrokes int      `json:"optimal_keystrokes"`
	Score             int      `json:"score"`
	Stars             int      `json:"stars"`
	Buffer            string   `json:"buffer"`
}

// FromChallenge converts a challenge to a DTO.
func FromChallenge(c challenge.Challenge) ChallengeDTO {
	hints := c.Hints
	if hints == nil {
		hints = []string{}
	}
	return ChallengeDTO{
		ID:                c.ID,
		Name:              c.Name,
		Description:       c.Description,
		Difficulty:        string(c.Difficulty),
		Category:          string(c.Category),
		Initial:           c.Initial,
		Target:            c.Target,
		Hints:             hints,
		OptimalKeystrokes: c.OptimalKeystrokes,
		Source:            string(c.Source),
	}
}

// FromChallenges converts a slice of challenges to DTOs
func FromChallenges(cs []challenge.Challenge) []ChallengeDTO {
	dtos := make([]ChallengeDTO, len(cs))
	for i, c := range cs {
		dtos[i] = FromChallenge(c)
	}
	return dtos
}

// FromReplay builds the replay DTO. A nil result means the script did
// not solve the challenge; score and stars stay zero.
func FromReplay(c challenge.Challenge, keys []string, keystrokes int, result *scoring.Result, buffer string) ReplayDTO {
	dto := ReplayDTO{
		ChallengeID:       c.ID,
		Keys:              keys,
		Keystrokes:        keystrokes,
		OptimalKeystrokes: c.OptimalKeystrokes,
		Buffer:            buffer,
	}
	if result != nil {
		dto.Completed = true
		dto.Keystrokes = result.Keystrokes
		dto.Score = result.Score()
		dto.Stars = result.Stars()
	}
	return dto
}
