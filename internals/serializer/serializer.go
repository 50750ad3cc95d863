// Package serializer converts entity graphs into plain ordered mappings for
// wire transmission. Persisted models (anything implementing schema.Tabler)
// are walked through their GORM schema metadata: scalar columns are copied
// verbatim and declared relationships are serialized recursively. A visited
// set keyed by pointer identity plus a depth bound keep cyclic graphs from
// recursing forever; a revisited or too-deep node is emitted as a reduced,
// scalar-only mapping instead of being dropped.
package serializer

import (
	"fmt"
	"log"
	"reflect"
	"sort"
	"sync"

	"gorm.io/gorm/schema"
)

const DefaultMaxDepth = 5

var (
	schemaCache = &sync.Map{}
	namer       = schema.NamingStrategy{}
)

// Serialize converts v (a pointer to an entity or any struct) into an
// ordered mapping, expanding relationships up to DefaultMaxDepth levels.
func Serialize(v any) (*Map, error) {
	return SerializeDepth(v, DefaultMaxDepth)
}

// SerializeDepth is Serialize with an explicit depth bound. Unexpected
// traversal failures are logged and propagated, never swallowed.
func SerializeDepth(v any, maxDepth int) (m *Map, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("serialize %T: %v", v, r)
		}
	}()

	visited := make(map[any]struct{})
	out, err := serializeValue(reflect.ValueOf(v), visited, maxDepth, 0)
	if err != nil {
		log.Printf("[ERROR] serialize %T: %v", v, err)
		return nil, err
	}
	mp, ok := out.(*Map)
	if !ok {
		return nil, fmt.Errorf("serialize %T: not a struct value", v)
	}
	return mp, nil
}

func serializeValue(rv reflect.Value, visited map[any]struct{}, maxDepth, depth int) (any, error) {
	if !rv.IsValid() {
		return nil, nil
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Struct {
			return serializeStruct(rv, visited, maxDepth, depth)
		}
		return serializeValue(rv.Elem(), visited, maxDepth, depth)

	case reflect.Struct:
		ptr := reflect.New(rv.Type())
		if rv.CanAddr() {
			ptr = rv.Addr()
		} else {
			ptr.Elem().Set(rv)
		}
		return serializeStruct(ptr, visited, maxDepth, depth)

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any{}, nil
		}
		items := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := serializeValue(rv.Index(i), visited, maxDepth, depth)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil

	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]reflect.Value, rv.Len())
		for _, k := range rv.MapKeys() {
			ks := fmt.Sprint(k.Interface())
			keys = append(keys, ks)
			byKey[ks] = rv.MapIndex(k)
		}
		sort.Strings(keys)
		out := NewMap()
		for _, k := range keys {
			v, err := serializeValue(byKey[k], visited, maxDepth, depth+1)
			if err != nil {
				return nil, err
			}
			out.Set(k, v)
		}
		return out, nil

	case reflect.Func, reflect.Chan:
		return nil, nil

	default:
		return rv.Interface(), nil
	}
}

// serializeStruct receives a pointer to a struct. Persisted models take the
// metadata-driven path, everything else the plain reflective one.
func serializeStruct(ptr reflect.Value, visited map[any]struct{}, maxDepth, depth int) (any, error) {
	if _, ok := ptr.Interface().(schema.Tabler); ok {
		return serializeEntity(ptr, visited, maxDepth, depth)
	}
	return serializeRegular(ptr, visited, maxDepth, depth)
}

func serializeEntity(ptr reflect.Value, visited map[any]struct{}, maxDepth, depth int) (any, error) {
	sch, err := schema.Parse(ptr.Interface(), schemaCache, namer)
	if err != nil {
		return nil, fmt.Errorf("parse schema of %T: %w", ptr.Interface(), err)
	}

	identity := ptr.Interface()
	if _, seen := visited[identity]; seen || depth > maxDepth {
		return reducedMap(ptr.Elem(), sch), nil
	}
	visited[identity] = struct{}{}

	elem := ptr.Elem()
	out := NewMap()
	for _, f := range sch.Fields {
		fv := elem.FieldByIndex(f.StructField.Index)
		if f.DBName != "" {
			out.Set(f.DBName, fv.Interface())
			continue
		}
		if _, isRel := sch.Relationships.Relations[f.Name]; !isRel {
			continue
		}
		key := namer.ColumnName("", f.Name)
		val, err := serializeValue(fv, visited, maxDepth, depth+1)
		if err != nil {
			return nil, err
		}
		out.Set(key, val)
	}
	return out, nil
}

// reducedMap breaks a cycle (or the depth bound) by emitting only the
// scalar columns of the entity, keeping the reference visible.
func reducedMap(elem reflect.Value, sch *schema.Schema) *Map {
	out := NewMap()
	for _, f := range sch.Fields {
		if f.DBName == "" {
			continue
		}
		out.Set(f.DBName, elem.FieldByIndex(f.StructField.Index).Interface())
	}
	return out
}

// serializeRegular handles structs without column metadata: every exported,
// non-func field is serialized with the same depth and cycle rules.
func serializeRegular(ptr reflect.Value, visited map[any]struct{}, maxDepth, depth int) (any, error) {
	if depth > maxDepth {
		return nil, nil
	}
	identity := ptr.Interface()
	if _, seen := visited[identity]; seen {
		return nil, nil
	}
	visited[identity] = struct{}{}

	elem := ptr.Elem()
	t := elem.Type()
	out := NewMap()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Type.Kind() == reflect.Func {
			continue
		}
		key := jsonFieldName(sf)
		if key == "-" {
			continue
		}
		val, err := serializeValue(elem.Field(i), visited, maxDepth, depth+1)
		if err != nil {
			return nil, err
		}
		out.Set(key, val)
	}
	return out, nil
}

func jsonFieldName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "" {
		return namer.ColumnName("", sf.Name)
	}
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			tag = tag[:i]
			break
		}
	}
	if tag == "" {
		return namer.ColumnName("", sf.Name)
	}
	return tag
}
