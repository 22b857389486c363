// Package codec is a supplemental JSON snapshot codec usable as a
// generator's Serializer/Deserializer pair (see streamengine.WithSerializer;
// spec §6 leaves a snapshot's wire shape undefined by the core). Not a
// general persistence layer.
package codec

import "encoding/json"

// Serialize marshals a snapshot to JSON. It satisfies streamengine.Serializer.
func Serialize(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Deserialize unmarshals a JSON snapshot into the generic decode shape
// encoding/json produces (map[string]any, []any, float64, string, bool, or
// nil). It satisfies streamengine.Deserializer.
func Deserialize(b []byte) (any, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}
