// Package pokemon reshapes raw PokeAPI payloads into the API's response models.
package pokemon

import (
	"encoding/json"
	"errors"
	"fmt"

	"pokemon-api/internal/model"
)

// CanonicalBaseURL is the base used to rebuild general-lookup URLs.
// It is fixed regardless of which upstream host served the data.
const CanonicalBaseURL = "https://pokeapi.co/api/v2/pokemon/"

// ErrMalformed reports an upstream payload that lacks a required field.
var ErrMalformed = errors.New("malformed upstream data")

type namedResource struct {
	Name *string `json:"name"`
}

type abilitySlot struct {
	Ability *namedResource `json:"ability"`
}

type typeSlot struct {
	Type *namedResource `json:"type"`
}

type spriteSet struct {
	FrontDefault *string `json:"front_default"`
	BackDefault  *string `json:"back_default"`
}

// Raw is the subset of an upstream pokemon payload the shaper reads.
// Pointer fields stay nil when the key is absent or null.
type Raw struct {
	ID        *int           `json:"id"`
	Name      *string        `json:"name"`
	Abilities *[]abilitySlot `json:"abilities"`
	Types     *[]typeSlot    `json:"types"`
	Sprites   *spriteSet     `json:"sprites"`
}

// Decode parses an upstream body. Absent fields are reported later by the
// projection that needs them.
func Decode(body []byte) (Raw, error) {
	var r Raw
	if err := json.Unmarshal(body, &r); err != nil {
		return Raw{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return r, nil
}

func missing(field string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformed, field)
}

// ToRef builds the general-lookup view. The URL is rebuilt from the id.
func ToRef(r Raw) (model.PokemonRef, error) {
	if r.Name == nil {
		return model.PokemonRef{}, missing("name")
	}
	if r.ID == nil {
		return model.PokemonRef{}, missing("id")
	}
	return model.PokemonRef{
		Name: *r.Name,
		URL:  fmt.Sprintf("%s%d/", CanonicalBaseURL, *r.ID),
	}, nil
}

// ToDetail builds the detail view.
func ToDetail(r Raw) (model.PokemonDetail, error) {
	return ApplyOverrides(r, model.PokemonUpdateRequest{})
}

// ApplyOverrides builds the detail view, taking abilities and types from
// req when supplied. Sprites and the pokedex number always come from r.
func ApplyOverrides(r Raw, req model.PokemonUpdateRequest) (model.PokemonDetail, error) {
	if r.Name == nil {
		return model.PokemonDetail{}, missing("name")
	}
	if r.ID == nil {
		return model.PokemonDetail{}, missing("id")
	}
	sprites, err := r.sprites()
	if err != nil {
		return model.PokemonDetail{}, err
	}

	abilities, ok := req.Abilities.Get()
	if !ok {
		if abilities, err = r.abilities(); err != nil {
			return model.PokemonDetail{}, err
		}
	}
	types, ok := req.Types.Get()
	if !ok {
		if types, err = r.types(); err != nil {
			return model.PokemonDetail{}, err
		}
	}

	return model.PokemonDetail{
		Name:          *r.Name,
		Abilities:     nonNil(abilities),
		PokedexNumber: *r.ID,
		Sprites:       sprites,
		Types:         nonNil(types),
	}, nil
}

func (r Raw) abilities() ([]string, error) {
	if r.Abilities == nil {
		return nil, missing("abilities")
	}
	out := make([]string, 0, len(*r.Abilities))
	for i, slot := range *r.Abilities {
		if slot.Ability == nil || slot.Ability.Name == nil {
			return nil, missing(fmt.Sprintf("abilities[%d].ability.name", i))
		}
		out = append(out, *slot.Ability.Name)
	}
	return out, nil
}

func (r Raw) types() ([]string, error) {
	if r.Types == nil {
		return nil, missing("types")
	}
	out := make([]string, 0, len(*r.Types))
	for i, slot := range *r.Types {
		if slot.Type == nil || slot.Type.Name == nil {
			return nil, missing(fmt.Sprintf("types[%d].type.name", i))
		}
		out = append(out, *slot.Type.Name)
	}
	return out, nil
}

// sprites keeps front_default then back_default, dropping null or empty values.
func (r Raw) sprites() ([]string, error) {
	if r.Sprites == nil {
		return nil, missing("sprites")
	}
	out := make([]string, 0, 2)
	for _, s := range []*string{r.Sprites.FrontDefault, r.Sprites.BackDefault} {
		if s != nil && *s != "" {
			out = append(out, *s)
		}
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
