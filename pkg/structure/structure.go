// Package structure contains type-related operations, such as enumerating the
// exported members of struct types together with their serialization aliases.
package structure

import (
	"strings"

	"github.com/goccy/go-reflect"
)

// Member describes a single exported field of a struct type.
type Member struct {
	// Name is the declared field name.
	Name string
	// Alias is the serialization alias taken from the struct tag, or the
	// empty string when the tag names none.
	Alias string
	// Index is the field's position within the struct.
	Index int
	// Type is the field's declared type.
	Type reflect.Type
}

// Members returns the exported fields of t in declaration order. The alias of
// each member is the name element of its tagName tag; a "-" name and an
// absent tag both leave the alias empty. Pointer indirection on t is removed
// first. Types whose underlying kind is not a struct have no members.
func Members(t reflect.Type, tagName string) []Member {
	t = Deref(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	members := make([]Member, 0, t.NumField())
	for n := range t.NumField() {
		field := t.Field(n)
		if field.PkgPath != "" {
			continue
		}
		members = append(members, Member{
			Name:  field.Name,
			Alias: alias(field, tagName),
			Index: n,
			Type:  field.Type,
		})
	}
	return members
}

func alias(field reflect.StructField, tagName string) string {
	tag, ok := field.Tag.Lookup(tagName)
	if !ok {
		return ""
	}
	if found := strings.IndexRune(tag, ','); found >= 0 {
		tag = tag[:found]
	}
	if tag == "-" {
		return ""
	}
	return tag
}

// Deref removes pointer indirection from a type. Passing a nil type returns
// nil.
func Deref(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// IsString reports whether a type's underlying kind is string. Named string
// types count; pointer indirection is removed first.
func IsString(t reflect.Type) bool {
	t = Deref(t)
	return t != nil && t.Kind() == reflect.String
}

// Nilable reports whether values of t can hold nil.
func Nilable(t reflect.Type) bool {
	if t == nil {
		return true
	}
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Ptr,
		reflect.UnsafePointer, reflect.Interface, reflect.Slice:
		return true
	}
	return false
}
