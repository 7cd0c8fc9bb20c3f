package ui

import (
	"fmt"

	"github.com/robalobadob/wordscramble/internal/game"
)

// FallbackNotice tells the player the root word list could not be read.
const FallbackNotice = "Word list unavailable: playing the fallback word"

// Describe maps a submission result to the alert shown to the player.
// Accepted and empty submissions have no alert and return empty strings.
func Describe(r game.Result, root string) (title, message string) {
	switch r {
	case game.RejectedSameAsRoot:
		return "Same as start word", "Be more original"
	case game.RejectedDuplicate:
		return "Word used already", "Be more original"
	case game.RejectedImpossibleLetters:
		return "Word not possible", fmt.Sprintf("You can't spell that word from '%s'!", root)
	case game.RejectedTooShort:
		return "Word too short", "Words need more than two letters"
	case game.RejectedNotARealWord:
		return "Word not recognized", "You can't just make them up, you know!"
	}
	return "", ""
}
