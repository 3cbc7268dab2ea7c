package dsl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatskema "github.com/reoring/chatskema"
	g "github.com/reoring/chatskema/dsl"
	"github.com/reoring/chatskema/wire"
)

type author struct {
	ID   chatskema.ID
	Name string
}

type note struct {
	ChannelID chatskema.ID
	Author    author
	Content   chatskema.Optional[string]
	Edited    chatskema.Optional[time.Time]
	Tags      []string
	Pinned    chatskema.Optional[bool]
	Extra     *wire.Object
}

var authorSchema = g.Object[author]("Author").
	Fields(
		g.Req("id", g.Snowflake(), func(a *author) *chatskema.ID { return &a.ID }),
		g.Req("name", g.String(), func(a *author) *string { return &a.Name }),
	).
	MustBuild()

func noteBuilder() *g.Builder[note] {
	return g.Object[note]("Note").
		Fields(
			g.Req("channel_id", g.Snowflake(), func(n *note) *chatskema.ID { return &n.ChannelID }),
			g.Req("author", g.Record(authorSchema), func(n *note) *author { return &n.Author }),
			g.Opt("content", g.String(), func(n *note) *chatskema.Optional[string] { return &n.Content }),
			g.Nullable("edited_timestamp", g.Timestamp(), func(n *note) *chatskema.Optional[time.Time] { return &n.Edited }),
			g.Req("tags", g.ArrayOf(g.String()), func(n *note) *[]string { return &n.Tags }),
			g.Nullable("pinned", g.Bool(), func(n *note) *chatskema.Optional[bool] { return &n.Pinned }),
		)
}

var noteSchema = noteBuilder().MustBuild()

func decodeJSON[T any](t *testing.T, s chatskema.Schema[T], doc string) (T, error) {
	t.Helper()
	return chatskema.DecodeJSON(context.Background(), s, []byte(doc))
}

func issuesOf(t *testing.T, err error) chatskema.Issues {
	t.Helper()
	iss, ok := chatskema.AsIssues(err)
	require.True(t, ok, "expected Issues, got %v", err)
	return iss
}

func TestObject_RoundTrip(t *testing.T) {
	ctx := context.Background()
	in := note{
		ChannelID: 123456789012345678,
		Author:    author{ID: 42, Name: "ann"},
		Content:   chatskema.Some("hi"),
		Edited:    chatskema.Some(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)),
		Tags:      []string{"a", "b"},
		Pinned:    chatskema.Null[bool](),
	}

	obj, err := chatskema.Encode(ctx, noteSchema, in)
	require.NoError(t, err)
	assert.Equal(t, []string{"channel_id", "author", "content", "edited_timestamp", "tags", "pinned"}, obj.Keys())

	out, err := chatskema.Decode(ctx, noteSchema, obj)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	b, err := chatskema.Marshal(obj)
	require.NoError(t, err)
	assert.JSONEq(t, `{"channel_id":"123456789012345678","author":{"id":"42","name":"ann"},"content":"hi",
		"edited_timestamp":"2024-03-01T10:00:00.000000+00:00","tags":["a","b"],"pinned":null}`, string(b))
}

func TestObject_AbsencePreserved(t *testing.T) {
	n, err := decodeJSON(t, noteSchema, `{"channel_id":"1","author":{"id":"2","name":"x"},"tags":[]}`)
	require.NoError(t, err)
	assert.True(t, n.Content.IsAbsent())
	assert.True(t, n.Edited.IsAbsent())
	assert.True(t, n.Pinned.IsAbsent())
	assert.NotNil(t, n.Tags)
	assert.Empty(t, n.Tags)

	b, err := chatskema.EncodeJSON(context.Background(), noteSchema, n)
	require.NoError(t, err)
	assert.Equal(t, `{"channel_id":"1","author":{"id":"2","name":"x"},"tags":[]}`, string(b))
}

func TestObject_NullPreserved(t *testing.T) {
	n, err := decodeJSON(t, noteSchema, `{"channel_id":"1","author":{"id":"2","name":"x"},"tags":[],"edited_timestamp":null}`)
	require.NoError(t, err)
	assert.True(t, n.Edited.IsNull())
	assert.False(t, n.Edited.IsAbsent())

	b, err := chatskema.EncodeJSON(context.Background(), noteSchema, n)
	require.NoError(t, err)
	assert.Equal(t, `{"channel_id":"1","author":{"id":"2","name":"x"},"tags":[],"edited_timestamp":null}`, string(b))
}

func TestObject_NullOnOptionalIsUnexpected(t *testing.T) {
	_, err := decodeJSON(t, noteSchema, `{"channel_id":"1","author":{"id":"2","name":"x"},"tags":[],"content":null}`)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, chatskema.CodeUnexpectedNull, iss[0].Code)
	assert.Equal(t, "content", iss[0].Path)
}

func TestObject_IdentifierStringAndNumberAgree(t *testing.T) {
	a, err := decodeJSON(t, authorSchema, `{"id":"123456789012345678","name":"x"}`)
	require.NoError(t, err)
	b, err := decodeJSON(t, authorSchema, `{"id":123456789012345678,"name":"x"}`)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, chatskema.ID(123456789012345678), a.ID)

	out, err := chatskema.EncodeJSON(context.Background(), authorSchema, b)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"123456789012345678","name":"x"}`, string(out))
}

func TestObject_IdentifierFloatModeSafeRange(t *testing.T) {
	opt := chatskema.DecodeOpt{NumberMode: chatskema.NumberFloat64}
	ctx := context.Background()

	a, err := chatskema.DecodeJSON(ctx, authorSchema, []byte(`{"id":9007199254740991,"name":"x"}`), opt)
	require.NoError(t, err)
	assert.Equal(t, chatskema.ID(chatskema.MaxSafeInteger), a.ID)

	_, err = chatskema.DecodeJSON(ctx, authorSchema, []byte(`{"id":123456789012345678,"name":"x"}`), opt)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, chatskema.CodeInvalidIdentifierFormat, iss[0].Code)
	assert.Equal(t, "id", iss[0].Path)
}

func TestObject_RequiredMissingOnlyIssue(t *testing.T) {
	type channelRef struct{ ChannelID chatskema.ID }
	s := g.Object[channelRef]("ChannelRef").
		Field(g.Req("channel_id", g.Snowflake(), func(c *channelRef) *chatskema.ID { return &c.ChannelID })).
		MustBuild()

	_, err := decodeJSON(t, s, `{}`)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, chatskema.CodeMissingRequiredField, iss[0].Code)
	assert.Equal(t, "channel_id", iss[0].Path)
}

func TestObject_AggregatesIndependentViolations(t *testing.T) {
	_, err := decodeJSON(t, noteSchema, `{"channel_id":"abc","author":{"id":"2","name":7},"tags":[]}`)
	iss := issuesOf(t, err)
	require.Len(t, iss, 2)
	assert.Equal(t, []string{chatskema.CodeInvalidIdentifierFormat, chatskema.CodeTypeMismatch}, iss.Codes())
	assert.Equal(t, "channel_id", iss[0].Path)
	assert.Equal(t, "author.name", iss[1].Path)
	assert.Equal(t, "string", iss[1].Params["expected"])
	assert.Equal(t, "number", iss[1].Params["actual"])
	assert.Equal(t, wire.Number("7"), iss[1].Value)
}

func TestObject_FailFastStopsAtFirst(t *testing.T) {
	_, err := chatskema.DecodeJSON(context.Background(), noteSchema,
		[]byte(`{"channel_id":"abc","author":{"id":"2","name":7},"tags":[]}`), chatskema.DecodeOpt{FailFast: true})
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, "channel_id", iss[0].Path)
}

func TestObject_ArrayElementPaths(t *testing.T) {
	_, err := decodeJSON(t, noteSchema, `{"channel_id":"1","author":{"id":"2","name":"x"},"tags":["ok",3,null]}`)
	iss := issuesOf(t, err)
	require.Len(t, iss, 2)
	assert.Equal(t, "tags[1]", iss[0].Path)
	assert.Equal(t, chatskema.CodeTypeMismatch, iss[0].Code)
	assert.Equal(t, "tags[2]", iss[1].Path)
	assert.Equal(t, chatskema.CodeUnexpectedNull, iss[1].Code)
}

func TestObject_InvalidTimestamp(t *testing.T) {
	_, err := decodeJSON(t, noteSchema, `{"channel_id":"1","author":{"id":"2","name":"x"},"tags":[],"edited_timestamp":"last week"}`)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, chatskema.CodeInvalidTimestampFormat, iss[0].Code)
	assert.Equal(t, "edited_timestamp", iss[0].Path)
	assert.Equal(t, "last week", iss[0].Value)
}

func TestObject_UnknownKeysIgnoredByDefault(t *testing.T) {
	with, err := decodeJSON(t, noteSchema, `{"channel_id":"1","flags":4,"author":{"id":"2","name":"x","bot":true},"tags":[]}`)
	require.NoError(t, err)
	without, err := decodeJSON(t, noteSchema, `{"channel_id":"1","author":{"id":"2","name":"x"},"tags":[]}`)
	require.NoError(t, err)
	assert.Equal(t, without, with)
}

func TestObject_StrictReportsUnknownKeys(t *testing.T) {
	s := noteBuilder().Strict().MustBuild()
	_, err := decodeJSON(t, s, `{"channel_id":"1","flags":4,"author":{"id":"2","name":"x"},"tags":[]}`)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, chatskema.CodeUnknownKey, iss[0].Code)
	assert.Equal(t, "flags", iss[0].Path)
}

func TestObject_PassthroughReemitsUnknownKeys(t *testing.T) {
	s := noteBuilder().Passthrough(func(n *note) **wire.Object { return &n.Extra }).MustBuild()
	doc := `{"flags":4,"channel_id":"1","author":{"id":"2","name":"x"},"nonce":{"a":[1,2]},"tags":[]}`

	n, err := decodeJSON(t, s, doc)
	require.NoError(t, err)
	require.NotNil(t, n.Extra)
	assert.Equal(t, []string{"flags", "nonce"}, n.Extra.Keys())

	b, err := chatskema.EncodeJSON(context.Background(), s, n)
	require.NoError(t, err)
	assert.Equal(t, `{"channel_id":"1","author":{"id":"2","name":"x"},"tags":[],"flags":4,"nonce":{"a":[1,2]}}`, string(b))

	clean, err := decodeJSON(t, s, `{"channel_id":"1","author":{"id":"2","name":"x"},"tags":[]}`)
	require.NoError(t, err)
	assert.Nil(t, clean.Extra)
}

func TestObject_EncodeNullOnNonNullableFails(t *testing.T) {
	n := note{ChannelID: 1, Author: author{ID: 2}, Tags: []string{}, Content: chatskema.Null[string]()}
	_, err := chatskema.Encode(context.Background(), noteSchema, n)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, chatskema.CodeUnexpectedNull, iss[0].Code)
	assert.Equal(t, "content", iss[0].Path)
}

func TestObject_NilSliceEncodesEmptyArray(t *testing.T) {
	b, err := chatskema.EncodeJSON(context.Background(), noteSchema, note{ChannelID: 1, Author: author{ID: 2}})
	require.NoError(t, err)
	assert.Equal(t, `{"channel_id":"1","author":{"id":"2","name":""},"tags":[]}`, string(b))
}

func TestObject_ReconcileRunsAfterDecode(t *testing.T) {
	type pair struct {
		Old chatskema.Optional[string]
		New chatskema.Optional[string]
	}
	s := g.Object[pair]("Pair").
		Fields(
			g.Opt("old", g.String(), func(p *pair) *chatskema.Optional[string] { return &p.Old }).Deprecated(),
			g.Nullable("new", g.String(), func(p *pair) *chatskema.Optional[string] { return &p.New }),
		).
		Reconcile("new-from-old", func(p *pair) {
			if v, ok := p.Old.Get(); ok && p.New.IsAbsent() {
				p.New = chatskema.Some(v)
			}
		}).
		MustBuild()

	p, err := decodeJSON(t, s, `{"old":"a"}`)
	require.NoError(t, err)
	assert.Equal(t, chatskema.Some("a"), p.New)

	p, err = decodeJSON(t, s, `{"old":"a","new":null}`)
	require.NoError(t, err)
	assert.True(t, p.New.IsNull())
	assert.Equal(t, chatskema.Some("a"), p.Old)
}

func TestObject_RootMustBeObject(t *testing.T) {
	_, err := decodeJSON(t, authorSchema, `[1]`)
	iss := issuesOf(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, chatskema.CodeTypeMismatch, iss[0].Code)

	_, err = decodeJSON(t, authorSchema, `null`)
	iss = issuesOf(t, err)
	assert.Equal(t, chatskema.CodeUnexpectedNull, iss[0].Code)
}

func TestBuild_RejectsInvalidDescriptions(t *testing.T) {
	_, err := g.Object[author]("Dup").
		Fields(
			g.Req("id", g.Snowflake(), func(a *author) *chatskema.ID { return &a.ID }),
			g.Req("id", g.String(), func(a *author) *string { return &a.Name }),
		).
		Build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, g.ErrInvalidSchema))
	assert.Contains(t, err.Error(), "duplicate wire name")

	_, err = g.Object[author]("NilAccessor").
		Field(g.Req[author, string]("name", g.String(), nil)).
		Build()
	require.ErrorIs(t, err, g.ErrInvalidSchema)

	_, err = g.Object[note]("NoExtra").Passthrough(nil).Build()
	require.ErrorIs(t, err, g.ErrInvalidSchema)

	assert.Panics(t, func() {
		g.Object[author]("").Field(g.Req("", g.String(), func(a *author) *string { return &a.Name })).MustBuild()
	})
}

func TestSchema_FieldsListing(t *testing.T) {
	fs := noteSchema.Fields()
	require.Len(t, fs, 6)
	assert.Equal(t, "channel_id", fs[0].Name)
	assert.Equal(t, chatskema.PolicyRequired, fs[0].Policy)
	assert.Equal(t, "snowflake", fs[0].Type)
	assert.Equal(t, chatskema.PolicyOptionalNullable, fs[3].Policy)
}

func TestSchema_JSONSchema(t *testing.T) {
	s, err := noteSchema.JSONSchema()
	require.NoError(t, err)
	assert.Equal(t, "Note", s.Title)
	assert.Equal(t, []string{"channel_id", "author", "tags"}, s.Required)
	assert.Equal(t, "snowflake", s.Properties["channel_id"].Format)
	require.Len(t, s.Properties["edited_timestamp"].AnyOf, 2)
	assert.Equal(t, "date-time", s.Properties["edited_timestamp"].AnyOf[0].Format)
	assert.Equal(t, "null", s.Properties["edited_timestamp"].AnyOf[1].Type)
	assert.Equal(t, "array", s.Properties["tags"].Type)
}
