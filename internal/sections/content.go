package sections

import (
	"encoding/json"
	"fmt"
)

// AboutContent backs about_us and life_at_company sections.
type AboutContent struct {
	Text       string   `json:"text"`
	Highlights []string `json:"highlights,omitempty"`
}

type Benefit struct {
	Icon        string `json:"icon,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type BenefitsContent struct {
	Benefits []Benefit `json:"benefits"`
}

type Value struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type ValuesContent struct {
	Values []Value `json:"values"`
}

// Decoded is the typed content of one section. Exactly one of the pointers
// is set, chosen by Type.
type Decoded struct {
	Type     string
	About    *AboutContent
	Benefits *BenefitsContent
	Values   *ValuesContent
}

// Decode unmarshals raw into the struct for sectionType.
func Decode(sectionType string, raw []byte) (*Decoded, error) {
	d := &Decoded{Type: sectionType}
	var target any
	switch sectionType {
	case AboutUs, LifeAtCompany:
		d.About = &AboutContent{}
		target = d.About
	case Benefits:
		d.Benefits = &BenefitsContent{}
		target = d.Benefits
	case Values:
		d.Values = &ValuesContent{}
		target = d.Values
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, sectionType)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode %s content: %w", sectionType, err)
	}
	return d, nil
}

// Encode marshals typed content back to a JSON document.
func Encode(v any) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	return json.RawMessage(b), nil
}
