// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

// shallowMerge applies updates onto dst in place: each key present in
// updates overwrites the corresponding key in dst, except a nil value,
// which is treated as "leave unchanged" rather than "clear the field".
// Nested objects and arrays are replaced wholesale, never merged recursively.
func shallowMerge(dst map[string]any, updates map[string]any) {
	for k, v := range updates {
		if v == nil {
			continue
		}
		dst[k] = v
	}
}
