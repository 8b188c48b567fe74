package exec

import (
	"context"
	"strconv"

	"github.com/99designs/gqlgen/graphql"
	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/sum529-create/study-graphql/internal/models"
)

var (
	queryImplementors    = []string{"Query"}
	mutationImplementors = []string{"Mutation"}
	tweetImplementors    = []string{"Tweet"}
	userImplementors     = []string{"User"}
	movieImplementors    = []string{"Movie"}
)

// errIntrospectionDisabled is reported for __schema and __type when the
// operation context has introspection turned off.
var errIntrospectionDisabled = errors.New("introspection disabled")

// middleware runs next through the operation's field middleware, if any.
func (ec *executionContext) middleware(ctx context.Context, next graphql.Resolver) (any, error) {
	if ec.ResolverMiddleware == nil {
		return next(ctx)
	}
	return ec.ResolverMiddleware(ctx, next)
}

func (ec *executionContext) rootMiddleware(ctx context.Context, next graphql.RootResolver) graphql.Marshaler {
	if ec.RootResolverMiddleware == nil {
		return next(ctx)
	}
	return ec.RootResolverMiddleware(ctx, next)
}

// resolveField resolves one selected field and marshals the result. Errors
// and panics are recorded on the field's path and the field becomes null.
// A null in a non-null position is reported unless the field already failed.
func resolveField[T any](ctx context.Context, ec *executionContext, object string, field graphql.CollectedField,
	args map[string]any, isResolver bool, resolve func(ctx context.Context) (T, error),
	marshal func(ctx context.Context, sel ast.SelectionSet, v T) graphql.Marshaler) (ret graphql.Marshaler) {
	fc := &graphql.FieldContext{
		Object:     object,
		Field:      field,
		Args:       args,
		IsMethod:   isResolver,
		IsResolver: isResolver,
	}
	ctx = graphql.WithFieldContext(ctx, fc)
	defer func() {
		if r := recover(); r != nil {
			graphql.AddError(ctx, ec.Recover(ctx, r))
			ret = graphql.Null
		}
	}()

	resTmp, err := ec.middleware(ctx, func(rctx context.Context) (any, error) {
		return resolve(rctx)
	})
	if err != nil {
		graphql.AddError(ctx, err)
		return graphql.Null
	}
	if resTmp == nil {
		if isNonNull(field) && !graphql.HasFieldError(ctx, fc) {
			graphql.AddErrorf(ctx, "must not be null")
		}
		return graphql.Null
	}
	res, ok := resTmp.(T)
	if !ok {
		graphql.AddError(ctx, errors.Errorf("unexpected type %T from middleware, should be %T", resTmp, res))
		return graphql.Null
	}
	fc.Result = res

	ret = marshal(ctx, field.Selections, res)
	if ret == graphql.Null && isNonNull(field) && !graphql.HasFieldError(ctx, fc) {
		graphql.AddErrorf(ctx, "must not be null")
	}
	return ret
}

// argumentError records a failed argument coercion against the field.
func (ec *executionContext) argumentError(ctx context.Context, object string, field graphql.CollectedField, err error) graphql.Marshaler {
	ctx = graphql.WithFieldContext(ctx, &graphql.FieldContext{Object: object, Field: field})
	graphql.AddError(ctx, err)
	return graphql.Null
}

func isNonNull(field graphql.CollectedField) bool {
	return field.Definition != nil && field.Definition.Type != nil && field.Definition.Type.NonNull
}

func unknownField(object string, field graphql.CollectedField) {
	panic("unknown field " + strconv.Quote(field.Name) + " on " + object)
}

func (ec *executionContext) _Query(ctx context.Context, sel ast.SelectionSet) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, queryImplementors)
	ctx = graphql.WithFieldContext(ctx, &graphql.FieldContext{Object: "Query"})

	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		innerCtx := graphql.WithRootFieldContext(ctx, &graphql.RootFieldContext{Object: "Query", Field: field})
		var next graphql.RootResolver
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("Query")
			continue
		case "allMovies":
			next = func(ctx context.Context) graphql.Marshaler { return ec._Query_allMovies(ctx, field) }
		case "allUsers":
			next = func(ctx context.Context) graphql.Marshaler { return ec._Query_allUsers(ctx, field) }
		case "allTweets":
			next = func(ctx context.Context) graphql.Marshaler { return ec._Query_allTweets(ctx, field) }
		case "tweet":
			next = func(ctx context.Context) graphql.Marshaler { return ec._Query_tweet(ctx, field) }
		case "movie":
			next = func(ctx context.Context) graphql.Marshaler { return ec._Query_movie(ctx, field) }
		case "__schema":
			next = func(ctx context.Context) graphql.Marshaler { return ec._Query___schema(ctx, field) }
		case "__type":
			next = func(ctx context.Context) graphql.Marshaler { return ec._Query___type(ctx, field) }
		default:
			unknownField("Query", field)
		}
		out.Values[i] = ec.rootMiddleware(innerCtx, next)
		if out.Values[i] == graphql.Null && isNonNull(field) {
			out.Invalids++
		}
	}
	if out.Invalids > 0 {
		return graphql.Null
	}
	return out
}

func (ec *executionContext) _Query_allMovies(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	return resolveField(ctx, ec, "Query", field, nil, true,
		func(ctx context.Context) ([]*models.Movie, error) {
			return ec.es.resolvers.Query().AllMovies(ctx)
		},
		func(ctx context.Context, sel ast.SelectionSet, v []*models.Movie) graphql.Marshaler {
			return marshalList(ctx, sel, v, true, ec._Movie)
		})
}

func (ec *executionContext) _Query_allUsers(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	return resolveField(ctx, ec, "Query", field, nil, true,
		func(ctx context.Context) ([]*models.User, error) {
			return ec.es.resolvers.Query().AllUsers(ctx)
		},
		func(ctx context.Context, sel ast.SelectionSet, v []*models.User) graphql.Marshaler {
			return marshalList(ctx, sel, v, true, ec._User)
		})
}

func (ec *executionContext) _Query_allTweets(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	return resolveField(ctx, ec, "Query", field, nil, true,
		func(ctx context.Context) ([]*models.Tweet, error) {
			return ec.es.resolvers.Query().AllTweets(ctx)
		},
		func(ctx context.Context, sel ast.SelectionSet, v []*models.Tweet) graphql.Marshaler {
			return marshalList(ctx, sel, v, true, ec._Tweet)
		})
}

func (ec *executionContext) _Query_tweet(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	args := field.ArgumentMap(ec.Variables)
	id, err := graphql.UnmarshalID(args["id"])
	if err != nil {
		return ec.argumentError(ctx, "Query", field, errors.Wrap(err, "argument id"))
	}
	args["id"] = id
	return resolveField(ctx, ec, "Query", field, args, true,
		func(ctx context.Context) (*models.Tweet, error) {
			return ec.es.resolvers.Query().Tweet(ctx, id)
		},
		ec._Tweet)
}

func (ec *executionContext) _Query_movie(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	args := field.ArgumentMap(ec.Variables)
	id, err := graphql.UnmarshalString(args["id"])
	if err != nil {
		return ec.argumentError(ctx, "Query", field, errors.Wrap(err, "argument id"))
	}
	args["id"] = id
	return resolveField(ctx, ec, "Query", field, args, true,
		func(ctx context.Context) (*models.Movie, error) {
			return ec.es.resolvers.Query().Movie(ctx, id)
		},
		ec._Movie)
}

func (ec *executionContext) _Mutation(ctx context.Context, sel ast.SelectionSet) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, mutationImplementors)
	ctx = graphql.WithFieldContext(ctx, &graphql.FieldContext{Object: "Mutation"})

	// mutation fields run one after another, in selection order
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		innerCtx := graphql.WithRootFieldContext(ctx, &graphql.RootFieldContext{Object: "Mutation", Field: field})
		var next graphql.RootResolver
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("Mutation")
			continue
		case "postTweet":
			next = func(ctx context.Context) graphql.Marshaler { return ec._Mutation_postTweet(ctx, field) }
		case "deleteTweet":
			next = func(ctx context.Context) graphql.Marshaler { return ec._Mutation_deleteTweet(ctx, field) }
		default:
			unknownField("Mutation", field)
		}
		out.Values[i] = ec.rootMiddleware(innerCtx, next)
		if out.Values[i] == graphql.Null && isNonNull(field) {
			out.Invalids++
		}
	}
	if out.Invalids > 0 {
		return graphql.Null
	}
	return out
}

func (ec *executionContext) _Mutation_postTweet(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	args := field.ArgumentMap(ec.Variables)
	text, err := graphql.UnmarshalString(args["text"])
	if err != nil {
		return ec.argumentError(ctx, "Mutation", field, errors.Wrap(err, "argument text"))
	}
	userID, err := graphql.UnmarshalID(args["userId"])
	if err != nil {
		return ec.argumentError(ctx, "Mutation", field, errors.Wrap(err, "argument userId"))
	}
	args["text"], args["userId"] = text, userID
	return resolveField(ctx, ec, "Mutation", field, args, true,
		func(ctx context.Context) (*models.Tweet, error) {
			return ec.es.resolvers.Mutation().PostTweet(ctx, text, userID)
		},
		ec._Tweet)
}

func (ec *executionContext) _Mutation_deleteTweet(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	args := field.ArgumentMap(ec.Variables)
	id, err := graphql.UnmarshalID(args["id"])
	if err != nil {
		return ec.argumentError(ctx, "Mutation", field, errors.Wrap(err, "argument id"))
	}
	args["id"] = id
	return resolveField(ctx, ec, "Mutation", field, args, true,
		func(ctx context.Context) (bool, error) {
			return ec.es.resolvers.Mutation().DeleteTweet(ctx, id)
		},
		marshalBoolean)
}

func (ec *executionContext) _Tweet(ctx context.Context, sel ast.SelectionSet, obj *models.Tweet) graphql.Marshaler {
	if obj == nil {
		return graphql.Null
	}
	fields := graphql.CollectFields(ec.OperationContext, sel, tweetImplementors)

	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("Tweet")
		case "id":
			out.Values[i] = resolveField(ctx, ec, "Tweet", field, nil, false,
				func(context.Context) (string, error) { return obj.ID, nil }, marshalID)
		case "text":
			out.Values[i] = resolveField(ctx, ec, "Tweet", field, nil, false,
				func(context.Context) (string, error) { return obj.Text, nil }, marshalString)
		case "userId":
			out.Values[i] = resolveField(ctx, ec, "Tweet", field, nil, false,
				func(context.Context) (string, error) { return obj.UserID, nil }, marshalID)
		case "author":
			out.Values[i] = resolveField(ctx, ec, "Tweet", field, nil, true,
				func(ctx context.Context) (*models.User, error) {
					return ec.es.resolvers.Tweet().Author(ctx, obj)
				},
				ec._User)
		default:
			unknownField("Tweet", field)
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

func (ec *executionContext) _User(ctx context.Context, sel ast.SelectionSet, obj *models.User) graphql.Marshaler {
	if obj == nil {
		return graphql.Null
	}
	fields := graphql.CollectFields(ec.OperationContext, sel, userImplementors)

	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("User")
		case "id":
			out.Values[i] = resolveField(ctx, ec, "User", field, nil, false,
				func(context.Context) (string, error) { return obj.ID, nil }, marshalID)
		case "firstName":
			out.Values[i] = resolveField(ctx, ec, "User", field, nil, false,
				func(context.Context) (string, error) { return obj.FirstName, nil }, marshalString)
		case "lastName":
			out.Values[i] = resolveField(ctx, ec, "User", field, nil, false,
				func(context.Context) (string, error) { return obj.LastName, nil }, marshalString)
		case "fullName":
			out.Values[i] = resolveField(ctx, ec, "User", field, nil, true,
				func(ctx context.Context) (string, error) {
					return ec.es.resolvers.User().FullName(ctx, obj)
				},
				marshalString)
		default:
			unknownField("User", field)
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

func (ec *executionContext) _Movie(ctx context.Context, sel ast.SelectionSet, obj *models.Movie) graphql.Marshaler {
	if obj == nil {
		return graphql.Null
	}
	fields := graphql.CollectFields(ec.OperationContext, sel, movieImplementors)

	str := func(field graphql.CollectedField, v string) graphql.Marshaler {
		return resolveField(ctx, ec, "Movie", field, nil, false,
			func(context.Context) (string, error) { return v, nil }, marshalString)
	}
	num := func(field graphql.CollectedField, v float64) graphql.Marshaler {
		return resolveField(ctx, ec, "Movie", field, nil, false,
			func(context.Context) (float64, error) { return v, nil }, marshalFloat)
	}
	integer := func(field graphql.CollectedField, v int) graphql.Marshaler {
		return resolveField(ctx, ec, "Movie", field, nil, false,
			func(context.Context) (int, error) { return v, nil }, marshalInt)
	}

	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("Movie")
		case "id":
			out.Values[i] = integer(field, obj.ID)
		case "url":
			out.Values[i] = str(field, obj.URL)
		case "imdb_code":
			out.Values[i] = str(field, obj.ImdbCode)
		case "title":
			out.Values[i] = str(field, obj.Title)
		case "title_english":
			out.Values[i] = str(field, obj.TitleEnglish)
		case "title_long":
			out.Values[i] = str(field, obj.TitleLong)
		case "slug":
			out.Values[i] = str(field, obj.Slug)
		case "year":
			out.Values[i] = integer(field, obj.Year)
		case "rating":
			out.Values[i] = num(field, obj.Rating)
		case "runtime":
			out.Values[i] = num(field, obj.Runtime)
		case "genres":
			out.Values[i] = resolveField(ctx, ec, "Movie", field, nil, false,
				func(context.Context) ([]string, error) { return obj.Genres, nil },
				func(ctx context.Context, sel ast.SelectionSet, v []string) graphql.Marshaler {
					if v == nil {
						v = []string{}
					}
					return marshalList(ctx, sel, v, true, marshalString)
				})
		case "summary":
			out.Values[i] = str(field, obj.Summary)
		case "description_full":
			out.Values[i] = str(field, obj.DescriptionFull)
		case "synopsis":
			out.Values[i] = str(field, obj.Synopsis)
		case "yt_trailer_code":
			out.Values[i] = str(field, obj.YtTrailerCode)
		case "language":
			out.Values[i] = str(field, obj.Language)
		case "background_image":
			out.Values[i] = str(field, obj.BackgroundImage)
		case "background_image_original":
			out.Values[i] = str(field, obj.BackgroundImageOriginal)
		case "small_cover_image":
			out.Values[i] = str(field, obj.SmallCoverImage)
		case "medium_cover_image":
			out.Values[i] = str(field, obj.MediumCoverImage)
		case "large_cover_image":
			out.Values[i] = str(field, obj.LargeCoverImage)
		default:
			unknownField("Movie", field)
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

// marshalList marshals every element under its own indexed field context.
// With nonNullItems a single null element nulls the whole list.
func marshalList[T any](ctx context.Context, sel ast.SelectionSet, v []T, nonNullItems bool,
	item func(ctx context.Context, sel ast.SelectionSet, v T) graphql.Marshaler) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}
	ret := make(graphql.Array, len(v))
	for i := range v {
		fc := &graphql.FieldContext{Index: &i, Result: v[i]}
		ctx := graphql.WithFieldContext(ctx, fc)
		ret[i] = item(ctx, sel, v[i])
		if ret[i] == graphql.Null && nonNullItems {
			if !graphql.HasFieldError(ctx, fc) {
				graphql.AddErrorf(ctx, "the requested element is null which the schema does not allow")
			}
			return graphql.Null
		}
	}
	return ret
}

func marshalString(_ context.Context, _ ast.SelectionSet, v string) graphql.Marshaler {
	return graphql.MarshalString(v)
}

func marshalID(_ context.Context, _ ast.SelectionSet, v string) graphql.Marshaler {
	return graphql.MarshalID(v)
}

func marshalInt(_ context.Context, _ ast.SelectionSet, v int) graphql.Marshaler {
	return graphql.MarshalInt(v)
}

func marshalFloat(_ context.Context, _ ast.SelectionSet, v float64) graphql.Marshaler {
	return graphql.MarshalFloat(v)
}

func marshalBoolean(_ context.Context, _ ast.SelectionSet, v bool) graphql.Marshaler {
	return graphql.MarshalBoolean(v)
}

func marshalOptionalStringPtr(_ context.Context, _ ast.SelectionSet, v *string) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}
	return graphql.MarshalString(*v)
}
