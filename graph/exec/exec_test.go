package exec

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	gqlclient "github.com/99designs/gqlgen/client"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/sum529-create/study-graphql/internal/models"
)

type stubResolver struct {
	tweets  []*models.Tweet
	users   []*models.User
	movies  []*models.Movie
	fail    error
	panics  bool
	deleted []string
}

func (s *stubResolver) Query() QueryResolver       { return stubQuery{s} }
func (s *stubResolver) Mutation() MutationResolver { return stubMutation{s} }
func (s *stubResolver) Tweet() TweetResolver       { return stubTweet{s} }
func (s *stubResolver) User() UserResolver         { return stubUser{s} }

type stubQuery struct{ *stubResolver }
type stubMutation struct{ *stubResolver }
type stubTweet struct{ *stubResolver }
type stubUser struct{ *stubResolver }

func (s stubQuery) AllMovies(context.Context) ([]*models.Movie, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	return s.movies, nil
}

func (s stubQuery) AllUsers(context.Context) ([]*models.User, error) { return s.users, nil }

func (s stubQuery) AllTweets(context.Context) ([]*models.Tweet, error) { return s.tweets, nil }

func (s stubQuery) Tweet(_ context.Context, id string) (*models.Tweet, error) {
	for _, t := range s.tweets {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (s stubQuery) Movie(_ context.Context, id string) (*models.Movie, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	for _, m := range s.movies {
		if id == "7" && m.ID == 7 {
			return m, nil
		}
	}
	return nil, nil
}

func (s stubMutation) PostTweet(_ context.Context, text string, userID string) (*models.Tweet, error) {
	t := &models.Tweet{ID: "99", Text: text, UserID: userID}
	s.tweets = append(s.tweets, t)
	return t, nil
}

func (s stubMutation) DeleteTweet(_ context.Context, id string) (bool, error) {
	s.deleted = append(s.deleted, id)
	return id == "1", nil
}

func (s stubTweet) Author(_ context.Context, obj *models.Tweet) (*models.User, error) {
	if s.panics {
		panic("author lookup exploded")
	}
	for _, u := range s.users {
		if u.ID == obj.UserID {
			return u, nil
		}
	}
	return nil, nil
}

func (s stubUser) FullName(_ context.Context, obj *models.User) (string, error) {
	return obj.FullName(), nil
}

var _ ResolverRoot = (*stubResolver)(nil)

func newStub() *stubResolver {
	return &stubResolver{
		tweets: []*models.Tweet{
			{ID: "1", Text: "first one!", UserID: "2"},
			{ID: "2", Text: "second one", UserID: "9"},
		},
		users: []*models.User{
			{ID: "1", FirstName: "kim", LastName: "coco"},
			{ID: "2", FirstName: "Elon", LastName: "Mask"},
		},
		movies: []*models.Movie{
			{ID: 7, Title: "Seven", Genres: []string{"Crime"}, Rating: 8.6, Year: 1995},
		},
	}
}

func newClient(r ResolverRoot, introspect bool) *gqlclient.Client {
	srv := handler.New(NewExecutableSchema(Config{Resolvers: r}))
	srv.AddTransport(transport.POST{})
	if introspect {
		srv.Use(extension.Introspection{})
	}
	return gqlclient.New(srv)
}

func TestQueryAllTweetsWithAuthor(t *testing.T) {
	c := newClient(newStub(), false)

	var resp struct {
		AllTweets []struct {
			ID     string `json:"id"`
			Text   string `json:"text"`
			Author *struct {
				FullName string `json:"fullName"`
			} `json:"author"`
		} `json:"allTweets"`
	}
	c.MustPost(`{ allTweets { id text author { fullName } } }`, &resp)

	require.Len(t, resp.AllTweets, 2)
	assert.Equal(t, "1", resp.AllTweets[0].ID)
	require.NotNil(t, resp.AllTweets[0].Author)
	assert.Equal(t, "Elon Mask", resp.AllTweets[0].Author.FullName)
	// dangling userId resolves to null without an error
	assert.Nil(t, resp.AllTweets[1].Author)
}

func TestAliasesFragmentsAndTypename(t *testing.T) {
	c := newClient(newStub(), false)

	var resp struct {
		First struct {
			Typename string `json:"__typename"`
			Text     string `json:"text"`
		} `json:"first"`
		Missing *struct {
			ID string `json:"id"`
		} `json:"missing"`
	}
	c.MustPost(`
		query {
			first: tweet(id: "1") { ...parts }
			missing: tweet(id: "404") { id }
		}
		fragment parts on Tweet { __typename text }`, &resp)

	assert.Equal(t, "Tweet", resp.First.Typename)
	assert.Equal(t, "first one!", resp.First.Text)
	assert.Nil(t, resp.Missing)
}

func TestSkipAndVariables(t *testing.T) {
	c := newClient(newStub(), false)

	var resp map[string]any
	c.MustPost(`query($id: ID!, $skip: Boolean!) { tweet(id: $id) { id text @skip(if: $skip) } }`, &resp,
		gqlclient.Var("id", "2"), gqlclient.Var("skip", true))

	assert.Equal(t, map[string]any{"id": "2"}, resp["tweet"])
}

func TestMutationsRunInOrder(t *testing.T) {
	stub := newStub()
	c := newClient(stub, false)

	var resp struct {
		Post struct {
			ID     string `json:"id"`
			Text   string `json:"text"`
			UserID string `json:"userId"`
		} `json:"post"`
		Hit  bool `json:"hit"`
		Miss bool `json:"miss"`
	}
	c.MustPost(`mutation {
		post: postTweet(text: "hello", userId: "1") { id text userId }
		hit: deleteTweet(id: "1")
		miss: deleteTweet(id: "77")
	}`, &resp)

	assert.Equal(t, "hello", resp.Post.Text)
	assert.Equal(t, "1", resp.Post.UserID)
	assert.True(t, resp.Hit)
	assert.False(t, resp.Miss)
	assert.Equal(t, []string{"1", "77"}, stub.deleted)
}

func TestResolverErrorNullsTheNonNullParent(t *testing.T) {
	stub := newStub()
	stub.fail = errors.New("failed to fetch movies")
	c := newClient(stub, false)

	resp, err := c.RawPost(`{ allMovies { title } }`)
	require.NoError(t, err)
	assert.Nil(t, resp.Data)

	var gqlErrs []struct {
		Message string   `json:"message"`
		Path    []string `json:"path"`
	}
	require.NoError(t, json.Unmarshal(resp.Errors, &gqlErrs))
	require.Len(t, gqlErrs, 1)
	assert.Equal(t, "failed to fetch movies", gqlErrs[0].Message)
	assert.Equal(t, []string{"allMovies"}, gqlErrs[0].Path)
}

func TestNullableRootFieldErrorKeepsSiblings(t *testing.T) {
	stub := newStub()
	stub.fail = errors.New("failed to fetch movie")
	c := newClient(stub, false)

	var resp struct {
		Movie     *struct{ Title string } `json:"movie"`
		AllTweets []struct {
			ID string `json:"id"`
		} `json:"allTweets"`
	}
	err := c.Post(`{ movie(id: "7") { title } allTweets { id } }`, &resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch movie")
	assert.Nil(t, resp.Movie)
	assert.Len(t, resp.AllTweets, 2)
}

func TestPanicBecomesFieldError(t *testing.T) {
	stub := newStub()
	stub.panics = true
	c := newClient(stub, false)

	var resp struct {
		Tweet *struct {
			Text   string `json:"text"`
			Author *struct {
				ID string `json:"id"`
			} `json:"author"`
		} `json:"tweet"`
	}
	err := c.Post(`{ tweet(id: "1") { text author { id } } }`, &resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "internal system error")
	require.NotNil(t, resp.Tweet)
	assert.Equal(t, "first one!", resp.Tweet.Text)
	assert.Nil(t, resp.Tweet.Author)
}

func TestMovieTextIsForwardedAsIs(t *testing.T) {
	c := newClient(newStub(), false)

	var resp struct {
		Movie struct {
			ID      int      `json:"id"`
			Title   string   `json:"title"`
			Rating  float64  `json:"rating"`
			Genres  []string `json:"genres"`
			Summary *string  `json:"summary"`
		} `json:"movie"`
	}
	c.MustPost(`{ movie(id: "7") { id title rating genres summary } }`, &resp)

	assert.Equal(t, 7, resp.Movie.ID)
	assert.Equal(t, "Seven", resp.Movie.Title)
	assert.InDelta(t, 8.6, resp.Movie.Rating, 0.0001)
	assert.Equal(t, []string{"Crime"}, resp.Movie.Genres)
	// YTS sends "" for a missing summary and it reaches the client unchanged
	require.NotNil(t, resp.Movie.Summary)
	assert.Equal(t, "", *resp.Movie.Summary)
}

func TestIntrospection(t *testing.T) {
	c := newClient(newStub(), true)

	var resp struct {
		Schema struct {
			QueryType    struct{ Name string } `json:"queryType"`
			MutationType struct{ Name string } `json:"mutationType"`
		} `json:"__schema"`
		Type struct {
			Kind   string `json:"kind"`
			Fields []struct {
				Name string `json:"name"`
				Type struct {
					Kind   string `json:"kind"`
					OfType *struct {
						Name string `json:"name"`
					} `json:"ofType"`
				} `json:"type"`
			} `json:"fields"`
		} `json:"__type"`
	}
	c.MustPost(`{
		__schema { queryType { name } mutationType { name } }
		__type(name: "Tweet") { kind fields { name type { kind ofType { name } } } }
	}`, &resp)

	assert.Equal(t, "Query", resp.Schema.QueryType.Name)
	assert.Equal(t, "Mutation", resp.Schema.MutationType.Name)
	assert.Equal(t, "OBJECT", resp.Type.Kind)
	require.Len(t, resp.Type.Fields, 4)
	assert.Equal(t, "id", resp.Type.Fields[0].Name)
	assert.Equal(t, "NON_NULL", resp.Type.Fields[0].Type.Kind)
	require.NotNil(t, resp.Type.Fields[0].Type.OfType)
	assert.Equal(t, "ID", resp.Type.Fields[0].Type.OfType.Name)
	assert.Equal(t, "author", resp.Type.Fields[3].Name)
	assert.Equal(t, "OBJECT", resp.Type.Fields[3].Type.Kind)
}

func TestIntrospectionDisabled(t *testing.T) {
	c := newClient(newStub(), false)

	var resp map[string]any
	err := c.Post(`{ __schema { queryType { name } } }`, &resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "introspection disabled")
}

func TestComplexityTable(t *testing.T) {
	es := NewExecutableSchema(Config{Resolvers: newStub()})

	n, ok := es.Complexity(context.Background(), "Query", "allTweets", 3, nil)
	assert.True(t, ok)
	assert.Equal(t, 31, n)

	_, ok = es.Complexity(context.Background(), "Tweet", "text", 0, nil)
	assert.False(t, ok)
}

// selectAll selects every field of def, passing "1" for each argument and
// __typename below object-typed fields.
func selectAll(def *ast.Definition) string {
	var parts []string
	for _, f := range def.Fields {
		if strings.HasPrefix(f.Name, "__") {
			continue
		}
		sel := f.Name
		if len(f.Arguments) > 0 {
			var args []string
			for _, a := range f.Arguments {
				args = append(args, a.Name+`: "1"`)
			}
			sel += "(" + strings.Join(args, ", ") + ")"
		}
		if kind := parsedSchema.Types[f.Type.Name()].Kind; kind != ast.Scalar && kind != ast.Enum {
			sel += " { __typename }"
		}
		parts = append(parts, sel)
	}
	return strings.Join(parts, " ")
}

func TestEverySchemaFieldIsExecutable(t *testing.T) {
	entry := map[string]string{
		"Query":    "query { %s }",
		"Mutation": "mutation { %s }",
		"Tweet":    "{ allTweets { %s } }",
		"User":     "{ allUsers { %s } }",
		"Movie":    "{ allMovies { %s } }",
	}

	for name, def := range parsedSchema.Types {
		if def.Kind != ast.Object || def.BuiltIn || strings.HasPrefix(name, "__") {
			continue
		}
		tmpl, ok := entry[name]
		require.True(t, ok, "object %s has no query reaching it", name)

		t.Run(name, func(t *testing.T) {
			c := newClient(newStub(), false)
			var resp map[string]any
			assert.NoError(t, c.Post(fmt.Sprintf(tmpl, selectAll(def)), &resp))
		})
	}
}
