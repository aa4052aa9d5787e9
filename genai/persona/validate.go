package persona

import (
	"fmt"
	"unicode/utf8"

	"github.com/viant/simupersona/genai/errs"
)

// Field bounds, in characters.
const (
	MaxName          = 100
	MaxTone          = 50
	MaxProfession    = 100
	MaxGoals         = 500
	MaxBackground    = 1000
	MaxSpeakingStyle = 200
	MaxInterests     = 500
	MaxListItems     = 10
	MaxListItem      = 50
	MaxStarters      = 5
	MaxStarter       = 200
)

type validator struct {
	details []string
}

func (v *validator) required(field, value string, max int) {
	if value == "" {
		v.details = append(v.details, field+" is required")
		return
	}
	v.bounded(field, value, max)
}

func (v *validator) bounded(field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		v.details = append(v.details, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
}

func (v *validator) list(field string, items []string, maxItems, maxItem int) {
	if len(items) > maxItems {
		v.details = append(v.details, fmt.Sprintf("%s must have at most %d items", field, maxItems))
	}
	for i, item := range items {
		if utf8.RuneCountInString(item) > maxItem {
			v.details = append(v.details, fmt.Sprintf("%s[%d] must be at most %d characters", field, i, maxItem))
		}
	}
}

// Validate checks required fields and length bounds. It returns
// *errs.ValidationError listing every violation.
func (p *Persona) Validate() error {
	v := &validator{}
	v.required("name", p.Name, MaxName)
	v.required("tone", p.Tone, MaxTone)
	v.required("profession", p.Profession, MaxProfession)
	v.required("goals", p.Goals, MaxGoals)
	if p.OwnerID == "" {
		v.details = append(v.details, "userId is required")
	}
	v.bounded("background", p.Background, MaxBackground)
	v.bounded("speaking_style", p.SpeakingStyle, MaxSpeakingStyle)
	v.bounded("interests", p.Interests, MaxInterests)
	v.list("personality_traits", p.PersonalityTraits, MaxListItems, MaxListItem)
	v.list("expertise_areas", p.ExpertiseAreas, MaxListItems, MaxListItem)
	v.list("conversation_starters", p.ConversationStarters, MaxStarters, MaxStarter)
	return errs.NewValidationError(v.details...)
}
