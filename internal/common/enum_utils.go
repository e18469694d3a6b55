// Package common provides shared enum string registries used by the cell,
// config and CLI layers.
package common

import (
	"fmt"
	"strings"
)

// EnumStringMap represents a mapping from enum values to string representations.
type EnumStringMap map[int]string

// EnumRegistry provides utilities for managing enum string representations.
type EnumRegistry struct {
	mappings map[string]EnumStringMap
}

// NewEnumRegistry creates a new EnumRegistry instance.
func NewEnumRegistry() *EnumRegistry {
	return &EnumRegistry{
		mappings: make(map[string]EnumStringMap),
	}
}

// RegisterEnum registers an enum type with its string mapping.
func (er *EnumRegistry) RegisterEnum(typeName string, mapping EnumStringMap) {
	er.mappings[typeName] = mapping
}

// FormatEnum formats an enum value for a registered type.
func (er *EnumRegistry) FormatEnum(typeName string, value int) string {
	if mapping, exists := er.mappings[typeName]; exists {
		if str, found := mapping[value]; found {
			return str
		}
	}
	return fmt.Sprintf("unknown_%s(%d)", typeName, value)
}

// GetEnumMapping returns the mapping for a registered enum type.
func (er *EnumRegistry) GetEnumMapping(typeName string) (EnumStringMap, bool) {
	mapping, exists := er.mappings[typeName]
	return mapping, exists
}

// KindMapping maps cell kinds to their canonical names.
var KindMapping = EnumStringMap{
	0: "int",     // Int
	1: "uint",    // UInt
	2: "float",   // Float
	3: "char",    // Char
	4: "bool",    // Bool
	5: "text",    // Text
	6: "missing", // Missing
	7: "mixed",   // Mixed
}

// KindAliases maps alternative spellings accepted when parsing kinds.
var KindAliases = map[string]int{
	"na":      6,
	"null":    6,
	"integer": 0,
	"string":  5,
	"str":     5,
	"double":  2,
	"boolean": 4,
}

// OperatorMapping maps cell arithmetic operators to their symbols.
var OperatorMapping = EnumStringMap{
	0: "+", // OpAdd
	1: "-", // OpSub
	2: "*", // OpMul
	3: "/", // OpDiv
}

// Default enum registry with common mappings.
var defaultEnumRegistry = func() *EnumRegistry {
	registry := NewEnumRegistry()
	registry.RegisterEnum("Kind", KindMapping)
	registry.RegisterEnum("Operator", OperatorMapping)
	return registry
}()

// FormatEnum formats an enum value using the provided mapping.
func FormatEnum(value int, mapping EnumStringMap) string {
	if str, exists := mapping[value]; exists {
		return str
	}
	return fmt.Sprintf("unknown(%d)", value)
}

// FormatKind formats a kind enum value.
func FormatKind(kind int) string {
	return defaultEnumRegistry.FormatEnum("Kind", kind)
}

// FormatOperator formats an operator enum value.
func FormatOperator(op int) string {
	return defaultEnumRegistry.FormatEnum("Operator", op)
}

// StringToEnum provides utilities for parsing enum values from strings.
type StringToEnum struct {
	reverseMappings map[string]map[string]int
}

// NewStringToEnum creates a new StringToEnum instance.
func NewStringToEnum() *StringToEnum {
	return &StringToEnum{
		reverseMappings: make(map[string]map[string]int),
	}
}

// RegisterReverseMapping registers a reverse mapping for an enum type.
func (ste *StringToEnum) RegisterReverseMapping(typeName string, mapping EnumStringMap) {
	reverseMap := make(map[string]int)
	for value, str := range mapping {
		reverseMap[strings.ToLower(str)] = value
	}
	ste.reverseMappings[typeName] = reverseMap
}

// RegisterAliases adds extra spellings to an already registered enum type.
func (ste *StringToEnum) RegisterAliases(typeName string, aliases map[string]int) {
	reverseMap, exists := ste.reverseMappings[typeName]
	if !exists {
		reverseMap = make(map[string]int)
		ste.reverseMappings[typeName] = reverseMap
	}
	for str, value := range aliases {
		reverseMap[strings.ToLower(str)] = value
	}
}

// ParseEnum parses a string to its enum value, ignoring case and surrounding space.
func (ste *StringToEnum) ParseEnum(typeName, str string) (int, bool) {
	if reverseMap, exists := ste.reverseMappings[typeName]; exists {
		if value, found := reverseMap[strings.ToLower(strings.TrimSpace(str))]; found {
			return value, true
		}
	}
	return 0, false
}

// Default string-to-enum converter with common mappings.
var defaultStringToEnum = func() *StringToEnum {
	converter := NewStringToEnum()
	converter.RegisterReverseMapping("Kind", KindMapping)
	converter.RegisterAliases("Kind", KindAliases)
	converter.RegisterReverseMapping("Operator", OperatorMapping)
	return converter
}()

// ParseKind parses a kind name or alias.
func ParseKind(str string) (int, bool) {
	return defaultStringToEnum.ParseEnum("Kind", str)
}

// ParseOperator parses an operator symbol.
func ParseOperator(str string) (int, bool) {
	return defaultStringToEnum.ParseEnum("Operator", str)
}
