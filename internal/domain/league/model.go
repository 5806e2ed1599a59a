package league

import "strings"

// Descriptor is a league resolved from the upstream directory.
type Descriptor struct {
	ID           string `validate:"required"`
	Name         string `validate:"required"`
	Abbreviation string
	Slug         string `validate:"required"`
	Logo         string
	Sport        string `validate:"required"`
}

// DisplayName prefers the abbreviation for compact labels.
func (d Descriptor) DisplayName() string {
	if abbr := strings.TrimSpace(d.Abbreviation); abbr != "" {
		return abbr
	}
	return d.Name
}
