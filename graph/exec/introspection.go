package exec

import (
	"context"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/introspection"
	"github.com/vektah/gqlparser/v2/ast"
)

// inputValue is the __InputValue view shared by field arguments, directive
// arguments and input object fields.
type inputValue struct {
	name         string
	description  *string
	typ          *introspection.Type
	defaultValue *string
}

func fromIntrospection(in []introspection.InputValue) []inputValue {
	out := make([]inputValue, len(in))
	for i := range in {
		out[i] = inputValue{
			name:         in[i].Name,
			description:  in[i].Description(),
			typ:          in[i].Type,
			defaultValue: in[i].DefaultValue,
		}
	}
	return out
}

func (ec *executionContext) fromDefinition(fields ast.FieldList) []inputValue {
	out := make([]inputValue, len(fields))
	for i, f := range fields {
		out[i] = inputValue{
			name: f.Name,
			typ:  introspection.WrapTypeFromType(ec.es.schema, f.Type),
		}
		if f.Description != "" {
			out[i].description = &f.Description
		}
		if f.DefaultValue != nil {
			v := f.DefaultValue.String()
			out[i].defaultValue = &v
		}
	}
	return out
}

// definition returns the schema definition behind a named type.
func (ec *executionContext) definition(t *introspection.Type) *ast.Definition {
	name := t.Name()
	if name == nil {
		return nil
	}
	return ec.es.schema.Types[*name]
}

func (ec *executionContext) _Query___schema(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	return resolveField(ctx, ec, "Query", field, nil, true,
		func(context.Context) (*introspection.Schema, error) {
			if ec.DisableIntrospection {
				return nil, errIntrospectionDisabled
			}
			return introspection.WrapSchema(ec.es.schema), nil
		},
		ec.___Schema)
}

func (ec *executionContext) _Query___type(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	args := field.ArgumentMap(ec.Variables)
	name, err := graphql.UnmarshalString(args["name"])
	if err != nil {
		return ec.argumentError(ctx, "Query", field, err)
	}
	return resolveField(ctx, ec, "Query", field, args, true,
		func(context.Context) (*introspection.Type, error) {
			if ec.DisableIntrospection {
				return nil, errIntrospectionDisabled
			}
			return introspection.WrapTypeFromDef(ec.es.schema, ec.es.schema.Types[name]), nil
		},
		ec.___Type)
}

func (ec *executionContext) ___Schema(ctx context.Context, sel ast.SelectionSet, obj *introspection.Schema) graphql.Marshaler {
	if obj == nil {
		return graphql.Null
	}
	fields := graphql.CollectFields(ec.OperationContext, sel, []string{"__Schema"})

	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__Schema")
		case "description":
			out.Values[i] = graphql.Null
		case "types":
			out.Values[i] = resolveField(ctx, ec, "__Schema", field, nil, true,
				func(context.Context) ([]introspection.Type, error) { return obj.Types(), nil },
				ec.typeList)
		case "queryType":
			out.Values[i] = resolveField(ctx, ec, "__Schema", field, nil, true,
				func(context.Context) (*introspection.Type, error) { return obj.QueryType(), nil },
				ec.___Type)
		case "mutationType":
			out.Values[i] = resolveField(ctx, ec, "__Schema", field, nil, true,
				func(context.Context) (*introspection.Type, error) { return obj.MutationType(), nil },
				ec.___Type)
		case "subscriptionType":
			out.Values[i] = resolveField(ctx, ec, "__Schema", field, nil, true,
				func(context.Context) (*introspection.Type, error) { return obj.SubscriptionType(), nil },
				ec.___Type)
		case "directives":
			out.Values[i] = resolveField(ctx, ec, "__Schema", field, nil, true,
				func(context.Context) ([]introspection.Directive, error) { return obj.Directives(), nil },
				func(ctx context.Context, sel ast.SelectionSet, v []introspection.Directive) graphql.Marshaler {
					if v == nil {
						v = []introspection.Directive{}
					}
					return marshalList(ctx, sel, v, true, ec.___Directive)
				})
		default:
			unknownField("__Schema", field)
		}
		if out.Values[i] == graphql.Null && isNonNull(field) {
			out.Invalids++
		}
	}
	if out.Invalids > 0 {
		return graphql.Null
	}
	return out
}

func (ec *executionContext) typeList(ctx context.Context, sel ast.SelectionSet, v []introspection.Type) graphql.Marshaler {
	return marshalList(ctx, sel, v, true, func(ctx context.Context, sel ast.SelectionSet, t introspection.Type) graphql.Marshaler {
		return ec.___Type(ctx, sel, &t)
	})
}

func (ec *executionContext) ___Type(ctx context.Context, sel ast.SelectionSet, obj *introspection.Type) graphql.Marshaler {
	if obj == nil {
		return graphql.Null
	}
	fields := graphql.CollectFields(ec.OperationContext, sel, []string{"__Type"})
	def := ec.definition(obj)

	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__Type")
		case "kind":
			out.Values[i] = resolveField(ctx, ec, "__Type", field, nil, true,
				func(context.Context) (string, error) { return obj.Kind(), nil },
				marshalString)
		case "name":
			out.Values[i] = resolveField(ctx, ec, "__Type", field, nil, true,
				func(context.Context) (*string, error) { return obj.Name(), nil },
				marshalOptionalStringPtr)
		case "description":
			out.Values[i] = resolveField(ctx, ec, "__Type", field, nil, true,
				func(context.Context) (*string, error) { return obj.Description(), nil },
				marshalOptionalStringPtr)
		case "specifiedByURL":
			out.Values[i] = resolveField(ctx, ec, "__Type", field, nil, true,
				func(context.Context) (*string, error) { return specifiedByURL(def), nil },
				marshalOptionalStringPtr)
		case "fields":
			args := field.ArgumentMap(ec.Variables)
			includeDeprecated, _ := args["includeDeprecated"].(bool)
			out.Values[i] = resolveField(ctx, ec, "__Type", field, args, true,
				func(context.Context) ([]introspection.Field, error) { return obj.Fields(includeDeprecated), nil },
				func(ctx context.Context, sel ast.SelectionSet, v []introspection.Field) graphql.Marshaler {
					return marshalList(ctx, sel, v, true, func(ctx context.Context, sel ast.SelectionSet, f introspection.Field) graphql.Marshaler {
						return ec.___Field(ctx, sel, &f)
					})
				})
		case "interfaces":
			out.Values[i] = resolveField(ctx, ec, "__Type", field, nil, true,
				func(context.Context) ([]introspection.Type, error) { return obj.Interfaces(), nil },
				ec.typeList)
		case "possibleTypes":
			out.Values[i] = resolveField(ctx, ec, "__Type", field, nil, true,
				func(context.Context) ([]introspection.Type, error) { return obj.PossibleTypes(), nil },
				ec.typeList)
		case "enumValues":
			args := field.ArgumentMap(ec.Variables)
			includeDeprecated, _ := args["includeDeprecated"].(bool)
			out.Values[i] = resolveField(ctx, ec, "__Type", field, args, true,
				func(context.Context) ([]introspection.EnumValue, error) { return obj.EnumValues(includeDeprecated), nil },
				func(ctx context.Context, sel ast.SelectionSet, v []introspection.EnumValue) graphql.Marshaler {
					return marshalList(ctx, sel, v, true, func(ctx context.Context, sel ast.SelectionSet, e introspection.EnumValue) graphql.Marshaler {
						return ec.___EnumValue(ctx, sel, &e)
					})
				})
		case "inputFields":
			out.Values[i] = resolveField(ctx, ec, "__Type", field, nil, true,
				func(context.Context) ([]inputValue, error) {
					if def == nil || def.Kind != ast.InputObject {
						return nil, nil
					}
					return ec.fromDefinition(def.Fields), nil
				},
				ec.inputValueList)
		case "ofType":
			out.Values[i] = resolveField(ctx, ec, "__Type", field, nil, true,
				func(context.Context) (*introspection.Type, error) { return obj.OfType(), nil },
				ec.___Type)
		case "isOneOf":
			out.Values[i] = resolveField(ctx, ec, "__Type", field, nil, true,
				func(context.Context) (bool, error) {
					return def != nil && def.Kind == ast.InputObject && def.Directives.ForName("oneOf") != nil, nil
				},
				marshalBoolean)
		default:
			unknownField("__Type", field)
		}
		if out.Values[i] == graphql.Null && isNonNull(field) {
			out.Invalids++
		}
	}
	if out.Invalids > 0 {
		return graphql.Null
	}
	return out
}

func specifiedByURL(def *ast.Definition) *string {
	if def == nil || def.Kind != ast.Scalar {
		return nil
	}
	d := def.Directives.ForName("specifiedBy")
	if d == nil {
		return nil
	}
	arg := d.Arguments.ForName("url")
	if arg == nil || arg.Value == nil {
		return nil
	}
	return &arg.Value.Raw
}

func (ec *executionContext) ___Field(ctx context.Context, sel ast.SelectionSet, obj *introspection.Field) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, []string{"__Field"})

	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__Field")
		case "name":
			out.Values[i] = resolveField(ctx, ec, "__Field", field, nil, false,
				func(context.Context) (string, error) { return obj.Name, nil },
				marshalString)
		case "description":
			out.Values[i] = resolveField(ctx, ec, "__Field", field, nil, true,
				func(context.Context) (*string, error) { return obj.Description(), nil },
				marshalOptionalStringPtr)
		case "args":
			out.Values[i] = resolveField(ctx, ec, "__Field", field, nil, false,
				func(context.Context) ([]inputValue, error) { return fromIntrospection(obj.Args), nil },
				ec.inputValueList)
		case "type":
			out.Values[i] = resolveField(ctx, ec, "__Field", field, nil, false,
				func(context.Context) (*introspection.Type, error) { return obj.Type, nil },
				ec.___Type)
		case "isDeprecated":
			out.Values[i] = resolveField(ctx, ec, "__Field", field, nil, true,
				func(context.Context) (bool, error) { return obj.IsDeprecated(), nil },
				marshalBoolean)
		case "deprecationReason":
			out.Values[i] = resolveField(ctx, ec, "__Field", field, nil, true,
				func(context.Context) (*string, error) { return obj.DeprecationReason(), nil },
				marshalOptionalStringPtr)
		default:
			unknownField("__Field", field)
		}
		if out.Values[i] == graphql.Null && isNonNull(field) {
			out.Invalids++
		}
	}
	if out.Invalids > 0 {
		return graphql.Null
	}
	return out
}

func (ec *executionContext) inputValueList(ctx context.Context, sel ast.SelectionSet, v []inputValue) graphql.Marshaler {
	return marshalList(ctx, sel, v, true, ec.___InputValue)
}

func (ec *executionContext) ___InputValue(ctx context.Context, sel ast.SelectionSet, obj inputValue) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, []string{"__InputValue"})

	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__InputValue")
		case "name":
			out.Values[i] = resolveField(ctx, ec, "__InputValue", field, nil, false,
				func(context.Context) (string, error) { return obj.name, nil },
				marshalString)
		case "description":
			out.Values[i] = resolveField(ctx, ec, "__InputValue", field, nil, false,
				func(context.Context) (*string, error) { return obj.description, nil },
				marshalOptionalStringPtr)
		case "type":
			out.Values[i] = resolveField(ctx, ec, "__InputValue", field, nil, false,
				func(context.Context) (*introspection.Type, error) { return obj.typ, nil },
				ec.___Type)
		case "defaultValue":
			out.Values[i] = resolveField(ctx, ec, "__InputValue", field, nil, false,
				func(context.Context) (*string, error) { return obj.defaultValue, nil },
				marshalOptionalStringPtr)
		case "isDeprecated":
			out.Values[i] = graphql.MarshalBoolean(false)
		case "deprecationReason":
			out.Values[i] = graphql.Null
		default:
			unknownField("__InputValue", field)
		}
		if out.Values[i] == graphql.Null && isNonNull(field) {
			out.Invalids++
		}
	}
	if out.Invalids > 0 {
		return graphql.Null
	}
	return out
}

func (ec *executionContext) ___EnumValue(ctx context.Context, sel ast.SelectionSet, obj *introspection.EnumValue) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, []string{"__EnumValue"})

	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__EnumValue")
		case "name":
			out.Values[i] = resolveField(ctx, ec, "__EnumValue", field, nil, false,
				func(context.Context) (string, error) { return obj.Name, nil },
				marshalString)
		case "description":
			out.Values[i] = resolveField(ctx, ec, "__EnumValue", field, nil, true,
				func(context.Context) (*string, error) { return obj.Description(), nil },
				marshalOptionalStringPtr)
		case "isDeprecated":
			out.Values[i] = resolveField(ctx, ec, "__EnumValue", field, nil, true,
				func(context.Context) (bool, error) { return obj.IsDeprecated(), nil },
				marshalBoolean)
		case "deprecationReason":
			out.Values[i] = resolveField(ctx, ec, "__EnumValue", field, nil, true,
				func(context.Context) (*string, error) { return obj.DeprecationReason(), nil },
				marshalOptionalStringPtr)
		default:
			unknownField("__EnumValue", field)
		}
		if out.Values[i] == graphql.Null && isNonNull(field) {
			out.Invalids++
		}
	}
	if out.Invalids > 0 {
		return graphql.Null
	}
	return out
}

func (ec *executionContext) ___Directive(ctx context.Context, sel ast.SelectionSet, obj introspection.Directive) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, []string{"__Directive"})

	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__Directive")
		case "name":
			out.Values[i] = resolveField(ctx, ec, "__Directive", field, nil, false,
				func(context.Context) (string, error) { return obj.Name, nil },
				marshalString)
		case "description":
			out.Values[i] = resolveField(ctx, ec, "__Directive", field, nil, true,
				func(context.Context) (*string, error) { return obj.Description(), nil },
				marshalOptionalStringPtr)
		case "locations":
			out.Values[i] = resolveField(ctx, ec, "__Directive", field, nil, false,
				func(context.Context) ([]string, error) {
					if obj.Locations == nil {
						return []string{}, nil
					}
					return obj.Locations, nil
				},
				func(ctx context.Context, sel ast.SelectionSet, v []string) graphql.Marshaler {
					return marshalList(ctx, sel, v, true, marshalString)
				})
		case "args":
			out.Values[i] = resolveField(ctx, ec, "__Directive", field, nil, false,
				func(context.Context) ([]inputValue, error) { return fromIntrospection(obj.Args), nil },
				ec.inputValueList)
		case "isRepeatable":
			out.Values[i] = resolveField(ctx, ec, "__Directive", field, nil, false,
				func(context.Context) (bool, error) { return obj.IsRepeatable, nil },
				marshalBoolean)
		default:
			unknownField("__Directive", field)
		}
		if out.Values[i] == graphql.Null && isNonNull(field) {
			out.Invalids++
		}
	}
	if out.Invalids > 0 {
		return graphql.Null
	}
	return out
}
