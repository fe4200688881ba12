package instruments

import (
	"encoding/json"
	"fmt"
	"io"
)

// Import decodes a JSON instrument and validates its definition. Unknown
// fields are rejected so typos in map names surface early.
func Import(r io.Reader) (Instrument, error) {
	var inst Instrument
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&inst); err != nil {
		return Instrument{}, fmt.Errorf("decode instrument: %w", err)
	}
	if err := Validate(inst.Definition); err != nil {
		return Instrument{}, err
	}
	return inst, nil
}

// Export writes inst as indented JSON.
func Export(w io.Writer, inst Instrument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(inst)
}
