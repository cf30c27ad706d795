// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/genesis"
)

// maxExactFloat is the first integer a float64 may not represent.
const maxExactFloat = 1 << 53

var scaledAmount = regexp.MustCompile(`^([0-9]+)e([0-9]+)$`)

// expandAmount rewrites "<digits>e<decimals>" as a plain decimal string.
// Anything else is returned unchanged.
func expandAmount(s string) string {
	m := scaledAmount.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	zeros, err := strconv.Atoi(m[2])
	if err != nil || zeros > 78 {
		return s
	}
	return m[1] + strings.Repeat("0", zeros)
}

func parseAmount(s string) (*uint256.Int, error) {
	return uint256.FromDecimal(expandAmount(s))
}

// encodeParams resolves references in [params] and returns them as the JSON
// arguments of an action or query.
func encodeParams(r *genesis.Resolver, params map[string]interface{}) ([]byte, error) {
	if len(params) == 0 {
		return nil, nil
	}
	v, err := normalize(r, params)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// normalize converts the maps produced by yaml into ones encoding/json
// accepts, rewriting strings on the way.
func normalize(r *genesis.Resolver, v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, item := range t {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: key %v", ErrUnsupportedValue, k)
			}
			n, err := normalize(r, item)
			if err != nil {
				return nil, err
			}
			out[key] = n
		}
		return out, nil
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, item := range t {
			n, err := normalize(r, item)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			n, err := normalize(r, item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case string:
		if r.IsReference(t) {
			addr, err := r.Resolve(t)
			if err != nil {
				return nil, err
			}
			return addr.String(), nil
		}
		return expandAmount(t), nil
	case float64:
		// JSON numbers; yaml only produces these for non-integers.
		if t < 0 || t >= maxExactFloat || t != math.Trunc(t) {
			return nil, fmt.Errorf("%w: %v, write fractional and large amounts as strings", ErrUnsupportedValue, t)
		}
		return uint64(t), nil
	default:
		return t, nil
	}
}
