package stormsql

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oleiade/reflections"
	"github.com/pkg/errors"
)

// Filter applies the clause matcher, order, skip and limit to the given records.
// Records must be structs or pointers to structs.
func Filter[T any](records []T, sc *SelectClause) ([]T, error) {
	matched := make([]T, 0, len(records))
	for _, r := range records {
		if sc.Matcher != nil {
			ok, err := sc.Matcher.Match(r)
			if err != nil {
				return nil, errors.Wrap(err, "could not match record")
			}
			if !ok {
				continue
			}
		}
		matched = append(matched, r)
	}

	if len(sc.OrderBy) > 0 {
		for _, field := range sc.OrderBy {
			if len(matched) > 0 {
				if ok, _ := reflections.HasField(matched[0], field); !ok {
					return nil, errors.Errorf("unknown field: %s", field)
				}
			}
		}

		sort.SliceStable(matched, func(i, j int) bool {
			for _, field := range sc.OrderBy {
				a, _ := reflections.GetField(matched[i], field)
				b, _ := reflections.GetField(matched[j], field)

				c := compare(a, b)
				if c == 0 {
					continue
				}
				if sc.OrderByReversed {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}

	if sc.Skip > 0 {
		if sc.Skip >= len(matched) {
			return matched[:0], nil
		}
		matched = matched[sc.Skip:]
	}
	if sc.Limit > 0 && sc.Limit < len(matched) {
		matched = matched[:sc.Limit]
	}

	return matched, nil
}

// Project returns the selected fields of each record.
// All the fields are returned when no field is selected.
func Project[T any](records []T, sc *SelectClause) ([]map[string]any, error) {
	rows := make([]map[string]any, 0, len(records))
	for _, r := range records {
		fields := sc.SelectedFields
		if len(fields) == 0 {
			var err error
			fields, err = reflections.FieldsDeep(r)
			if err != nil {
				return nil, errors.Wrap(err, "could not list fields")
			}
		}

		row := make(map[string]any, len(fields))
		for _, field := range fields {
			v, err := reflections.GetField(r, field)
			if err != nil {
				return nil, errors.Wrapf(err, "could not get field %s", field)
			}
			row[field] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func compare(a, b any) int {
	switch va := a.(type) {
	case int:
		if vb, ok := b.(int); ok {
			return va - vb
		}
	case float64:
		if vb, ok := b.(float64); ok {
			switch {
			case va < vb:
				return -1
			case va > vb:
				return 1
			}
			return 0
		}
	case time.Time:
		if vb, ok := b.(time.Time); ok {
			return va.Compare(vb)
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
