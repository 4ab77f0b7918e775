// Package model defines the response and request shapes served by the API.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PokemonRef is the general-lookup representation of a Pokémon.
type PokemonRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PokemonDetail is the flattened detail representation of a Pokémon.
type PokemonDetail struct {
	Name          string   `json:"name"`
	Abilities     []string `json:"abilities"`
	PokedexNumber int      `json:"pokedex_number"`
	Sprites       []string `json:"sprites"`
	Types         []string `json:"types"`
}

// PokemonUpdateRequest carries caller overrides for the update endpoint.
// Sprites is accepted for compatibility but never applied.
type PokemonUpdateRequest struct {
	Abilities Optional[StringList] `json:"abilities"`
	Sprites   Optional[StringList] `json:"sprites"`
	Types     Optional[StringList] `json:"types"`
}

// StringList is a JSON list of strings that rejects null elements.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []*string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(StringList, 0, len(items))
	for i, s := range items {
		if s == nil {
			return fmt.Errorf("element %d is null", i)
		}
		out = append(out, *s)
	}
	*l = out
	return nil
}

// Optional distinguishes a field supplied with a value from an absent one.
// A JSON null is treated as absent.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether it was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
