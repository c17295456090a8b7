package agent

import (
	"fmt"
	"reflect"
	"sort"
)

// Type represents a specific type of an agent Config.
// Config's with this type can create Agents of the corresponding type.
type Type string

const (
	EGreedyQLearningLinear Type = "EGreedyQLearning-Linear"
	EGreedyESarsaLinear    Type = "EGreedyESarsa-Linear"
)

// Registered types with the package. Once a Type has been registered
// with this map, a Config with that type can be created by NewConfig.
//
// No Type's are registered wtih this package upon initialization.
// Each separate package is in charge of registering its Type with
// the package separately to avoid circular imports.
var registeredTypes = make(map[Type]reflect.Type)

// Register registers an agent's Type with a concrete Config type.
// The concrete type must implement Config with value receivers.
func Register(agentType Type, config Config) {
	registeredTypes[agentType] = reflect.TypeOf(config)
}

// NewConfig returns a pointer to a new zero-valued Config of the
// concrete type registered with agentType
func NewConfig(agentType Type) (Config, error) {
	t, ok := registeredTypes[agentType]
	if !ok {
		return nil, fmt.Errorf("newConfig: type %v not registered, "+
			"registered types are %v", agentType, RegisteredTypes())
	}

	return reflect.New(t).Interface().(Config), nil
}

// RegisteredTypes returns all registered types in sorted order
func RegisteredTypes() []Type {
	types := make([]Type, 0, len(registeredTypes))
	for t := range registeredTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}
