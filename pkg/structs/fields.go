package structs

import (
	"reflect"
	"sort"
	"strings"

	"github.com/oleiade/reflections"
)

// GetField returns the value of the provided obj field. obj can whether be a structure or pointer to structure.
func GetField(obj any, name string) any {
	v, err := reflections.GetField(obj, name)
	if err != nil {
		panic(err)
	}

	return v
}

// HasField reports whether obj has an exported field with the given name.
func HasField(obj any, name string) bool {
	ok, err := reflections.HasField(obj, name)
	return err == nil && ok
}

// SetField sets the provided obj field with provided value.
// obj param has to be a pointer to a struct, otherwise it will soundly fail.
// Provided value type should match with the struct field you're trying to set.
func SetField(obj any, name string, value any) {
	if err := reflections.SetField(obj, name, value); err != nil {
		panic(err)
	}
}

// Merge copies all the non-zero exported fields of patch into dst (shallow merge).
// dst and patch must be pointers to the same struct type. Fields listed in skip are left untouched.
// A nil slice is zero but an empty one is not, so an empty slice clears the destination.
func Merge(dst, patch any, skip ...string) {
	ignored := make(map[string]bool, len(skip))
	for _, name := range skip {
		ignored[name] = true
	}

	fields, err := reflections.Fields(patch)
	if err != nil {
		panic(err)
	}

	for _, name := range fields {
		if ignored[name] {
			continue
		}

		v := GetField(patch, name)
		if reflect.ValueOf(v).IsZero() {
			continue
		}
		SetField(dst, name, v)
	}
}

// MergeFields copies the given fields of patch into dst, zero values included.
// dst and patch must be pointers to the same struct type.
func MergeFields(dst, patch any, fields ...string) {
	for _, name := range fields {
		SetField(dst, name, GetField(patch, name))
	}
}

// FieldsByTag returns the sorted names of the fields whose tag name, for the given tag key, is one of names.
// Tag options (e.g. omitempty) are ignored and names matching no field are skipped.
func FieldsByTag(obj any, key string, names ...string) []string {
	tags, err := reflections.Tags(obj, key)
	if err != nil {
		panic(err)
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	fields := make([]string, 0, len(names))
	for field, tag := range tags {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" && wanted[name] {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	return fields
}
