package mystore

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"
)

type InMemoryStore[T any] struct {
	sync.Mutex
	Items map[string]T
}

func NewInMemoryStore[T any](c context.Context) (*InMemoryStore[T], func(), error) {
	return &InMemoryStore[T]{
		Items: make(map[string]T),
	}, func() {}, nil
}

func (s *InMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	// Start transaction
	s.Lock()

	ctx := context.WithValue(c, ctxTransactionKey{}, true)

	// Within this block everything is transactional
	err := f(ctx)
	if err != nil {

		// Rollback
		s.Unlock()

		return err
	}

	// Commit
	s.Unlock()

	return nil
}

func (s *InMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
	}

	s.Items[uid] = value

	if nonTransactional {
		s.Unlock()
	}

	return nil
}

func (s *InMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
	}
	result, exists := s.Items[uid]

	if nonTransactional {
		s.Unlock()
	}

	return result, exists, nil
}

func (s *InMemoryStore[T]) Delete(c context.Context, uid string) error {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
	}

	delete(s.Items, uid)

	if nonTransactional {
		s.Unlock()
	}

	return nil
}

func (s *InMemoryStore[T]) List(c context.Context) ([]T, error) {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
	}

	result := make([]T, 0, len(s.Items))
	for _, v := range s.Items {
		result = append(result, v)
	}

	if nonTransactional {
		s.Unlock()
	}

	return result, nil
}

func (s *InMemoryStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
	}

	result := []T{}
	for _, v := range s.Items {
		if matchesAll(v, filters) {
			result = append(result, v)
		}
	}

	if nonTransactional {
		s.Unlock()
	}

	orderBy(result, orderByField)

	return result, nil
}

func matchesAll[T any](value T, filters []Filter) bool {
	for _, f := range filters {
		if !matches(value, f) {
			return false
		}
	}
	return true
}

// matches mimics the subset of datastore filter semantics that the services
// actually use: nil-checks on pointer fields, (in)equality on scalars and
// ordering comparisons on timestamps.
func matches[T any](value T, f Filter) bool {
	field := reflect.ValueOf(value).FieldByName(f.Field)
	if !field.IsValid() {
		return false
	}

	if field.Kind() == reflect.Pointer {
		if f.Value == nil {
			switch f.Compare {
			case "=":
				return field.IsNil()
			case "!=":
				return !field.IsNil()
			}
			return false
		}
		if field.IsNil() {
			return false
		}
		field = field.Elem()
	}

	if fieldTime, ok := field.Interface().(time.Time); ok {
		filterTime, ok := f.Value.(time.Time)
		if !ok {
			return false
		}
		switch f.Compare {
		case "=":
			return fieldTime.Equal(filterTime)
		case "<":
			return fieldTime.Before(filterTime)
		case "<=":
			return fieldTime.Before(filterTime) || fieldTime.Equal(filterTime)
		case ">":
			return fieldTime.After(filterTime)
		case ">=":
			return fieldTime.After(filterTime) || fieldTime.Equal(filterTime)
		}
		return false
	}

	switch f.Compare {
	case "=":
		return field.Interface() == f.Value
	case "!=":
		return field.Interface() != f.Value
	}
	return false
}

func orderBy[T any](values []T, fieldName string) {
	if fieldName == "" {
		return
	}
	sort.Slice(values, func(i, j int) bool {
		left := reflect.ValueOf(values[i]).FieldByName(fieldName)
		right := reflect.ValueOf(values[j]).FieldByName(fieldName)
		if !left.IsValid() || !right.IsValid() {
			return false
		}
		leftTime, leftOk := left.Interface().(time.Time)
		rightTime, rightOk := right.Interface().(time.Time)
		if leftOk && rightOk {
			return leftTime.Before(rightTime)
		}
		if left.Kind() == reflect.String {
			return left.String() < right.String()
		}
		return false
	})
}
