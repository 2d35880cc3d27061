package service

import (
	"fmt"
	"strings"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

var defaultBannedWords = []string{
	"spam", "offensive", "inappropriate", "hate", "violence",
	"fuck", "shit", "bitch", "asshole", "dick", "pussy", "whore", "slut", "bastard", "damn",
	"kill", "murder", "terrorist", "bomb", "suicide",
	"stupid", "idiot", "nigger", "faggot",
}

// Moderator rejects free-text profile fields containing banned words.
// Matching is a case-insensitive substring match.
type Moderator struct {
	words []string
}

func NewModerator(words ...string) *Moderator {
	if len(words) == 0 {
		words = defaultBannedWords
	}
	lower := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			lower = append(lower, w)
		}
	}
	return &Moderator{words: lower}
}

func (m *Moderator) contains(text string) bool {
	if text == "" {
		return false
	}
	text = strings.ToLower(text)
	for _, w := range m.words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// CheckProfile screens the bio and interests of a profile update.
func (m *Moderator) CheckProfile(in domain.ProfileUpdate) error {
	if m.contains(in.Bio) || m.contains(in.Interests) {
		return fmt.Errorf("%w: please remove it and try again", domain.ErrRejectedContent)
	}
	return nil
}
