package document

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Extra holds the stored fields of an object that its Go type does not model.
// Carrying them through a read-modify-write keeps whatever other writers put there.
type Extra map[string]json.RawMessage

// UnmarshalObject decodes data into known and returns the fields known has no
// JSON name for. known must point to a struct type without its own UnmarshalJSON.
func UnmarshalObject(data []byte, known any) (Extra, error) {
	if err := json.Unmarshal(data, known); err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	names := fieldNames(reflect.TypeOf(known).Elem())
	for key := range fields {
		// encoding/json matches keys case-insensitively
		if names[strings.ToLower(key)] {
			delete(fields, key)
		}
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return Extra(fields), nil
}

// MarshalObject encodes known and adds every extra field known does not write itself.
func MarshalObject(known any, extra Extra) ([]byte, error) {
	body, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return body, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	for key, value := range extra {
		if _, ok := fields[key]; !ok {
			fields[key] = value
		}
	}
	return json.Marshal(fields)
}

func fieldNames(t reflect.Type) map[string]bool {
	names := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		names[strings.ToLower(name)] = true
	}
	return names
}
