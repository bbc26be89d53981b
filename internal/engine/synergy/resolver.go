// Package synergy resolves which bonds and combine skills a team activates
package synergy

import (
	"github.com/KirkDiggler/cosmo-api/internal/entities"
)

// Result lists the active synergies of a team. Combine skills are kept
// apart from bonds because they are displayed as their own category.
type Result struct {
	Bonds         []ActiveBond         `json:"bonds"`
	CombineSkills []ActiveCombineSkill `json:"combineSkills"`
}

// ActiveBond is a bond whose partners are all on the team
type ActiveBond struct {
	SourceID   string    `json:"sourceId"`
	SourceName string    `json:"sourceName"`
	Name       string    `json:"name"`
	Effect     string    `json:"effect"`
	Partners   []Partner `json:"partners"`
}

// ActiveCombineSkill is a combine skill whose partners are all on the team
type ActiveCombineSkill struct {
	SourceID    string    `json:"sourceId"`
	SourceName  string    `json:"sourceName"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IconURL     string    `json:"iconUrl,omitempty"`
	Partners    []Partner `json:"partners"`
}

// Partner is the display form of a partner reference. Character is nil when
// no roster entry matched and only the raw name is known.
type Partner struct {
	Name      string                    `json:"name"`
	RawName   entities.LocalizedText    `json:"rawName"`
	Character *entities.CharacterRecord `json:"character,omitempty"`
	ImageURL  string                    `json:"imageUrl,omitempty"`
}

// Resolved reports whether the partner matched a character
func (p Partner) Resolved() bool {
	return p.Character != nil
}

// Config configures a Resolver
type Config struct {
	// Matcher defaults to SubstringMatcher{MinLength: 2}
	Matcher Matcher
}

// Resolver evaluates team synergies. It holds no mutable state and is safe
// for concurrent use.
type Resolver struct {
	matcher Matcher
}

// NewResolver creates a resolver, a nil config uses the defaults
func NewResolver(cfg *Config) *Resolver {
	r := &Resolver{matcher: defaultMatcher}
	if cfg != nil && cfg.Matcher != nil {
		r.matcher = cfg.Matcher
	}
	return r
}

var defaultResolver = NewResolver(nil)

// Resolve evaluates a team with the default matcher
func Resolve(team *entities.TeamComposition, roster []*entities.CharacterRecord, locale string) *Result {
	return defaultResolver.Resolve(team, roster, locale)
}

type textKey struct {
	name string
	text string
}

// Resolve returns the active bonds and combine skills of team. The team is
// treated as a set of distinct characters; roster is only used to display
// partners. It never fails: missing text renders as "" and unmatched
// partners render as name-only stubs.
func (r *Resolver) Resolve(team *entities.TeamComposition, roster []*entities.CharacterRecord, locale string) *Result {
	result := &Result{
		Bonds:         []ActiveBond{},
		CombineSkills: []ActiveCombineSkill{},
	}

	present := uniqueCharacters(team)
	if len(present) == 0 {
		return result
	}

	seenBonds := make(map[textKey]struct{})
	seenSkills := make(map[textKey]struct{})

	for _, c := range present {
		sourceName := c.Name.Localize(locale)

		for _, bond := range c.Bonds {
			if !r.allPresent(bond.Partners, present) {
				continue
			}
			key := textKey{name: bond.Name.Localize(locale), text: bond.Effect.Localize(locale)}
			if _, seen := seenBonds[key]; seen {
				continue
			}
			seenBonds[key] = struct{}{}

			result.Bonds = append(result.Bonds, ActiveBond{
				SourceID:   c.ID,
				SourceName: sourceName,
				Name:       key.name,
				Effect:     key.text,
				Partners:   r.displayPartners(bond.Partners, roster, present, locale),
			})
		}

		for _, skill := range c.CombineSkills {
			if !r.allPresent(skill.Partners, present) {
				continue
			}
			key := textKey{name: skill.Name.Localize(locale), text: skill.Description.Localize(locale)}
			if _, seen := seenSkills[key]; seen {
				continue
			}
			seenSkills[key] = struct{}{}

			result.CombineSkills = append(result.CombineSkills, ActiveCombineSkill{
				SourceID:    c.ID,
				SourceName:  sourceName,
				Name:        key.name,
				Description: key.text,
				IconURL:     skill.IconURL,
				Partners:    r.displayPartners(skill.Partners, roster, present, locale),
			})
		}
	}

	return result
}

// allPresent is an AND over partners. A synergy without partners is
// incomplete data and never activates.
func (r *Resolver) allPresent(partners []entities.LocalizedText, present []*entities.CharacterRecord) bool {
	if len(partners) == 0 {
		return false
	}
	for _, partner := range partners {
		if findMatch(r.matcher, partner, present) == nil {
			return false
		}
	}
	return true
}

// displayPartners resolves each partner against the roster first, then the
// team itself, taking the first match in iteration order
func (r *Resolver) displayPartners(
	partners []entities.LocalizedText,
	roster, present []*entities.CharacterRecord,
	locale string,
) []Partner {
	out := make([]Partner, 0, len(partners))
	for _, partner := range partners {
		match := findMatch(r.matcher, partner, roster)
		if match == nil {
			match = findMatch(r.matcher, partner, present)
		}

		if match == nil {
			out = append(out, Partner{
				Name:    partner.Localize(locale),
				RawName: partner,
			})
			continue
		}

		out = append(out, Partner{
			Name:      match.Name.Localize(locale),
			RawName:   partner,
			Character: match,
			ImageURL:  match.ImageURL,
		})
	}
	return out
}

// uniqueCharacters collects occupied slots in canonical order, deduplicated
// by ID, or by pointer when the ID is empty
func uniqueCharacters(team *entities.TeamComposition) []*entities.CharacterRecord {
	entries := team.Entries()
	seenIDs := make(map[string]struct{}, len(entries))
	seenPtrs := make(map[*entities.CharacterRecord]struct{}, len(entries))

	unique := make([]*entities.CharacterRecord, 0, len(entries))
	for _, entry := range entries {
		c := entry.Entry.Character
		if c.ID != "" {
			if _, seen := seenIDs[c.ID]; seen {
				continue
			}
			seenIDs[c.ID] = struct{}{}
		} else {
			if _, seen := seenPtrs[c]; seen {
				continue
			}
			seenPtrs[c] = struct{}{}
		}
		unique = append(unique, c)
	}
	return unique
}
