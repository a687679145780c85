package genotype

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	errs "github.com/matzehuels/potplant/pkg/errors"
	"github.com/matzehuels/potplant/pkg/plant"
)

// Encode returns the genotype of d. Resolutions above mesh.MaxResolution
// are rejected as they are on decode.
func Encode(d plant.Data) (string, error) {
	if err := checkResolutions(d); err != nil {
		return "", err
	}
	text, err := marshal(RoundData(d))
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidInput, err, "plant cannot be encoded")
	}
	return compress(text), nil
}

// marshal renders v as compact JSON without HTML escaping.
func marshal(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Decode parses and validates a genotype.
func Decode(code string) (plant.Data, error) {
	tree, err := parse(code)
	if err != nil {
		return plant.Data{}, err
	}
	return FromTree(tree)
}

// Parse returns the validated generic tree of a genotype, as produced by
// encoding/json: maps, slices, float64, string and nil.
func Parse(code string) (any, error) {
	tree, err := parse(code)
	if err != nil {
		return nil, err
	}
	if err := Validate(tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// Validate checks tree against the shape of plant.Data and reports the
// first violation.
func Validate(tree any) error {
	_, err := FromTree(tree)
	return err
}

// FromTree binds a validated generic tree to plant data. Integers must be
// float64 as encoding/json produces them, and no resolution may exceed
// mesh.MaxResolution.
func FromTree(tree any) (plant.Data, error) {
	var d plant.Data
	if err := bind(tree, reflect.ValueOf(&d).Elem(), ""); err != nil {
		return plant.Data{}, err
	}
	if err := checkResolutions(d); err != nil {
		return plant.Data{}, err
	}
	return d, nil
}

// Expand returns the JSON text of a genotype without parsing it.
func Expand(code string) string {
	return expand(strings.TrimSpace(code))
}

func parse(code string) (any, error) {
	var tree any
	if err := json.Unmarshal([]byte(Expand(code)), &tree); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidSyntax, err, "malformed genotype")
	}
	return tree, nil
}
