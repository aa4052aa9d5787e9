// Package persona defines the persona record, its input normalization and
// validation, the access rule and the system prompt compiler.
package persona

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Persona is the canonical description of a character.
type Persona struct {
	ID                   string    `json:"id" yaml:"id"`
	Name                 string    `json:"name" yaml:"name"`
	Tone                 string    `json:"tone" yaml:"tone"`
	Profession           string    `json:"profession" yaml:"profession"`
	Goals                string    `json:"goals" yaml:"goals"`
	PersonalityTraits    []string  `json:"personality_traits" yaml:"personalityTraits"`
	Background           string    `json:"background" yaml:"background"`
	SpeakingStyle        string    `json:"speaking_style" yaml:"speakingStyle"`
	ExpertiseAreas       []string  `json:"expertise_areas" yaml:"expertiseAreas"`
	ConversationStarters []string  `json:"conversation_starters" yaml:"conversationStarters"`
	Interests            string    `json:"interests" yaml:"interests"`
	IsPublic             bool      `json:"isPublic" yaml:"isPublic"`
	OwnerID              string    `json:"userId" yaml:"userId"`
	CreatedAt            time.Time `json:"created_at" yaml:"createdAt"`
	UpdatedAt            time.Time `json:"updated_at" yaml:"updatedAt"`
}

// Clone returns a deep copy of the persona.
func (p *Persona) Clone() *Persona {
	if p == nil {
		return nil
	}
	ret := *p
	ret.PersonalityTraits = append([]string(nil), p.PersonalityTraits...)
	ret.ExpertiseAreas = append([]string(nil), p.ExpertiseAreas...)
	ret.ConversationStarters = append([]string(nil), p.ConversationStarters...)
	return &ret
}

// Summary is the short persona reference embedded in chat responses.
type Summary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Tone       string `json:"tone,omitempty"`
	Profession string `json:"profession,omitempty"`
}

// Input carries create or update fields. Nil fields are left untouched on
// update. The communication_style and expertise aliases are accepted for
// older clients.
type Input struct {
	Name                 *string `json:"name,omitempty"`
	Tone                 *string `json:"tone,omitempty"`
	Profession           *string `json:"profession,omitempty"`
	Goals                *string `json:"goals,omitempty"`
	PersonalityTraits    *List   `json:"personality_traits,omitempty"`
	Background           *string `json:"background,omitempty"`
	SpeakingStyle        *string `json:"speaking_style,omitempty"`
	CommunicationStyle   *string `json:"communication_style,omitempty"`
	ExpertiseAreas       *List   `json:"expertise_areas,omitempty"`
	Expertise            *List   `json:"expertise,omitempty"`
	ConversationStarters *List   `json:"conversation_starters,omitempty"`
	Interests            *string `json:"interests,omitempty"`
	IsPublic             *bool   `json:"isPublic,omitempty"`
	OwnerID              string  `json:"userId"`
}

// Sanitize strips markup from every string field and list item.
func (in *Input) Sanitize() {
	for _, field := range []*string{in.Name, in.Tone, in.Profession, in.Goals, in.Background, in.SpeakingStyle, in.CommunicationStyle, in.Interests} {
		if field != nil {
			*field = Sanitize(*field)
		}
	}
	for _, list := range []*List{in.PersonalityTraits, in.ExpertiseAreas, in.Expertise, in.ConversationStarters} {
		if list == nil {
			continue
		}
		cleaned := make(List, 0, len(*list))
		for _, item := range *list {
			if item = Sanitize(item); item != "" {
				cleaned = append(cleaned, item)
			}
		}
		*list = cleaned
	}
	in.OwnerID = strings.TrimSpace(in.OwnerID)
}

// New creates a persona from input, assigning a fresh id and timestamps.
// The result is not validated.
func New(in *Input, now time.Time) *Persona {
	ret := &Persona{
		ID:                   uuid.NewString(),
		PersonalityTraits:    []string{},
		ExpertiseAreas:       []string{},
		ConversationStarters: []string{},
		OwnerID:              in.OwnerID,
		CreatedAt:            now,
	}
	ret.Apply(in, now)
	return ret
}

// Apply copies the non nil input fields into the persona and refreshes
// UpdatedAt. OwnerID and ID never change through Apply.
func (p *Persona) Apply(in *Input, now time.Time) {
	setString(&p.Name, in.Name)
	setString(&p.Tone, in.Tone)
	setString(&p.Profession, in.Profession)
	setString(&p.Goals, in.Goals)
	setString(&p.Background, in.Background)
	setString(&p.SpeakingStyle, in.SpeakingStyle)
	setString(&p.SpeakingStyle, in.CommunicationStyle)
	setString(&p.Interests, in.Interests)
	setList(&p.PersonalityTraits, in.PersonalityTraits)
	setList(&p.ExpertiseAreas, in.ExpertiseAreas)
	setList(&p.ExpertiseAreas, in.Expertise)
	setList(&p.ConversationStarters, in.ConversationStarters)
	if in.IsPublic != nil {
		p.IsPublic = *in.IsPublic
	}
	p.UpdatedAt = now
}

func setString(dest *string, value *string) {
	if value != nil {
		*dest = strings.TrimSpace(*value)
	}
}

func setList(dest *[]string, value *List) {
	if value != nil {
		*dest = value.Strings()
	}
}
