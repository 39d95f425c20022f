package compiler

import "fmt"

type ReferenceKind int

const (
	RefVariable ReferenceKind = iota
	RefFunction
	RefClass
)

// Reference is what a name in the reference stack resolves to: a typed
// variable, a function, or a class namespace.
type Reference struct {
	Kind     ReferenceKind
	Variable Type
	Function *FunctionReference
	Class    *ClassReference
}

func VariableReference(t Type) Reference           { return Reference{Kind: RefVariable, Variable: t} }
func FunctionReferenceValue(f *FunctionReference) Reference {
	return Reference{Kind: RefFunction, Function: f}
}
func ClassReferenceValue(c *ClassReference) Reference { return Reference{Kind: RefClass, Class: c} }

func (r *Reference) GetVariable() (Type, error) {
	if r.Kind != RefVariable {
		return nil, fmt.Errorf("reference is not a variable")
	}
	return r.Variable, nil
}

func (r *Reference) GetFunction() (*FunctionReference, error) {
	if r.Kind != RefFunction {
		return nil, fmt.Errorf("reference is not a function")
	}
	return r.Function, nil
}

func (r *Reference) GetClass() (*ClassReference, error) {
	if r.Kind != RefClass {
		return nil, fmt.Errorf("reference is not a class")
	}
	return r.Class, nil
}

// Parameter is one declared function/method parameter.
type Parameter struct {
	Name string
	Type Type
}

// ClassReference is the member namespace created by a class block: a
// flat map from property/method name to its Reference, registered as
// each member is declared.
type ClassReference struct {
	Name    string
	members map[string]*Reference
	order   []string
}

func NewClassReference(name string) *ClassReference {
	return &ClassReference{Name: name, members: map[string]*Reference{}}
}

func (c *ClassReference) Register(name string, ref Reference) error {
	if _, exists := c.members[name]; exists {
		return fmt.Errorf("'%s' is already declared in class '%s'", name, c.Name)
	}
	c.members[name] = &ref
	c.order = append(c.order, name)
	return nil
}

func (c *ClassReference) Get(name string) (*Reference, error) {
	r, ok := c.members[name]
	if !ok {
		return nil, fmt.Errorf("class '%s' has no member '%s'", c.Name, name)
	}
	return r, nil
}

// Members returns member names in declaration order.
func (c *ClassReference) Members() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
