package contenttree

import "sort"

// Object is a decoded mapping that remembers the order its keys were declared in.
// Values are Object, []any, string, bool, int64, float64 or nil.
type Object struct {
	Keys   []string
	Values map[string]any
}

// NewObject returns an empty Object.
func NewObject() Object {
	return Object{Values: map[string]any{}}
}

// Set adds or replaces a key, new keys are appended to the key order.
func (o *Object) Set(key string, v any) {
	if o.Values == nil {
		o.Values = map[string]any{}
	}
	if _, exists := o.Values[key]; !exists {
		o.Keys = append(o.Keys, key)
	}
	o.Values[key] = v
}

// ObjectFromMap converts a plain map, e.g. from encoding/json, into an Object.
// Plain maps carry no order so keys are sorted; nested maps are converted too.
func ObjectFromMap(m map[string]any) Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	obj := NewObject()
	for _, k := range keys {
		obj.Set(k, fromPlain(m[k]))
	}
	return obj
}

func fromPlain(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return ObjectFromMap(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = fromPlain(t[i])
		}
		return out
	}
	return v
}

func asObject(v any) (Object, bool) {
	switch t := v.(type) {
	case Object:
		return t, true
	case *Object:
		return *t, t != nil
	case map[string]any:
		return ObjectFromMap(t), true
	}
	return Object{}, false
}
