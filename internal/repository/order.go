package repository

import (
	"bytes"
	"cmp"
	"encoding/json"
	"slices"
)

// SortByKey orders documents by key, in place
func SortByKey(docs []Document) {
	slices.SortFunc(docs, func(a, b Document) int {
		return cmp.Compare(a.Key, b.Key)
	})
}

// SortByField orders documents by a top-level JSON field, in place.
// Numbers compare numerically, strings lexically, numbers before strings.
// Missing, null or non-scalar values go last; ties keep key order.
func SortByField(docs []Document, field string, dir Direction) {
	vals := make(map[string]fieldValue, len(docs))
	for _, d := range docs {
		vals[d.Key] = extractField(d.Data, field)
	}

	slices.SortStableFunc(docs, func(a, b Document) int {
		va, vb := vals[a.Key], vals[b.Key]
		switch {
		case !va.present && !vb.present:
			return cmp.Compare(a.Key, b.Key)
		case !va.present:
			return 1
		case !vb.present:
			return -1
		}
		c := va.compare(vb)
		if dir == Descending {
			c = -c
		}
		if c == 0 {
			return cmp.Compare(a.Key, b.Key)
		}
		return c
	})
}

type fieldValue struct {
	present bool
	isNum   bool
	num     float64
	str     string
}

func (v fieldValue) compare(o fieldValue) int {
	switch {
	case v.isNum && o.isNum:
		return cmp.Compare(v.num, o.num)
	case v.isNum:
		return -1
	case o.isNum:
		return 1
	default:
		return cmp.Compare(v.str, o.str)
	}
}

func extractField(data json.RawMessage, field string) fieldValue {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fieldValue{}
	}
	raw, ok := obj[field]
	if !ok {
		return fieldValue{}
	}
	raw = bytes.TrimSpace(raw)

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return fieldValue{present: true, isNum: true, num: num}
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return fieldValue{present: true, str: str}
	}
	return fieldValue{}
}
