// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import "encoding/json"

// marshalMap is a plain json.Marshal wrapper used to turn a merged
// map[string]any back into bytes before reparsing it into a typed payload.
func marshalMap(m map[string]any) ([]byte, error) {
	return json.Marshal(m)
}

// marshalWithExtra marshals v — a struct with json tags and no custom
// MarshalJSON of its own (typically a type-aliased payload) — then merges in
// any additional keys from extra, so fields this binary does not know about
// survive a decode-then-encode round trip.
func marshalWithExtra(v any, extra map[string]any) ([]byte, error) {
	base, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return base, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, val := range extra {
		b, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		merged[k] = b
	}

	return json.Marshal(merged)
}

// unmarshalWithExtra decodes data into v — a pointer to a struct with json
// tags and no custom UnmarshalJSON of its own — and returns any top-level
// object keys present in data that v's fields did not consume.
func unmarshalWithExtra(data []byte, v any) (map[string]any, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}

	knownBytes, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(knownBytes, &known); err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var extra map[string]any
	for k, val := range raw {
		if _, ok := known[k]; ok {
			continue
		}
		var decoded any
		if err := json.Unmarshal(val, &decoded); err != nil {
			return nil, err
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = decoded
	}

	return extra, nil
}
