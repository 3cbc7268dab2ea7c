package registry_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/discord"
	"github.com/reoring/chatskema/registry"
	"github.com/reoring/chatskema/wire"
)

func readTree(t *testing.T, doc []byte) any {
	t.Helper()
	tree, err := chatskema.ReadTree(chatskema.JSONBytes(doc), chatskema.DecodeOpt{})
	require.NoError(t, err)
	return tree
}

func TestDiscord_Names(t *testing.T) {
	names := registry.Discord().Names()
	assert.Len(t, names, 9)
	assert.Contains(t, names, discord.EventMessageCreate)
	assert.Contains(t, names, discord.EventInteractionCreate)
	assert.IsIncreasing(t, names)
}

func TestRegistry_DecodeEncode(t *testing.T) {
	ctx := context.Background()
	r := registry.Discord()
	tree := readTree(t, []byte(`{"id":"5","channel_id":"6","guild_id":"7"}`))

	rec, err := r.Decode(ctx, discord.EventMessageDelete, tree)
	require.NoError(t, err)
	del, ok := rec.(discord.MessageDelete)
	require.True(t, ok, "got %T", rec)
	assert.Equal(t, chatskema.ID(5), del.ID)

	out, err := r.Encode(ctx, discord.EventMessageDelete, del)
	require.NoError(t, err)
	assert.True(t, wire.Equal(tree, out))

	out, err = r.Encode(ctx, discord.EventMessageDelete, &del)
	require.NoError(t, err)
	assert.True(t, wire.Equal(tree, out))

	_, err = r.Encode(ctx, discord.EventMessageDelete, discord.TypingStart{})
	assert.ErrorIs(t, err, registry.ErrRecordType)
}

func TestRegistry_UnknownEvent(t *testing.T) {
	r := registry.Discord()
	_, err := r.Decode(context.Background(), "GUILD_CREATE", wire.NewObject(0))
	assert.ErrorIs(t, err, registry.ErrUnknownEvent)
	_, err = r.JSONSchema("GUILD_CREATE")
	assert.ErrorIs(t, err, registry.ErrUnknownEvent)
}

func TestRegistry_Register(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register(registry.Bind("X", discord.MessageDeleteSchema)))
	err := r.Register(registry.Bind("X", discord.MessageDeleteSchema))
	assert.ErrorIs(t, err, registry.ErrDuplicateEvent)
	assert.Error(t, r.Register(registry.Entry{}))

	e, ok := r.Lookup("X")
	require.True(t, ok)
	assert.Equal(t, "MessageDelete", e.Record)
}

func TestRegistry_JSONSchema(t *testing.T) {
	s, err := registry.Discord().JSONSchema(discord.EventMessageCreate)
	require.NoError(t, err)
	assert.Equal(t, "Message", s.Title)
	assert.Contains(t, s.Required, "author")
	assert.True(t, s.Properties["interaction"].Deprecated)
}

func TestDecodeDispatch(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.DebugLevel)
	r := registry.Discord(registry.WithLogger(zap.New(core)))

	data, err := os.ReadFile(filepath.Join("..", "discord", "testdata", "gateway_message_delete.json"))
	require.NoError(t, err)
	d, err := r.DecodeDispatch(ctx, readTree(t, data))
	require.NoError(t, err)
	assert.Equal(t, discord.EventMessageDelete, d.Event)
	assert.Equal(t, int64(42), d.Payload.S.Or(0))
	del, ok := d.Record.(discord.MessageDelete)
	require.True(t, ok)
	assert.Equal(t, chatskema.ID(1100000000000000010), del.ID)
	assert.Equal(t, 1, logs.FilterMessage("dispatch decoded").Len())
}

func TestDecodeDispatch_NonDispatch(t *testing.T) {
	d, err := registry.Discord().DecodeDispatch(context.Background(), readTree(t, []byte(`{"op":10,"d":{"heartbeat_interval":41250},"s":null,"t":null}`)))
	require.NoError(t, err)
	assert.Equal(t, discord.OpHello, d.Payload.Op)
	assert.Empty(t, d.Event)
	assert.Nil(t, d.Record)
}

func TestDecodeDispatch_Errors(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	r := registry.Discord(registry.WithLogger(zap.New(core)))

	_, err := r.DecodeDispatch(ctx, readTree(t, []byte(`{"op":0,"d":{},"s":3,"t":"GUILD_CREATE"}`)))
	assert.True(t, errors.Is(err, registry.ErrUnknownEvent))
	assert.Equal(t, 1, logs.FilterMessage("no schema for dispatch").Len())

	_, err = r.DecodeDispatch(ctx, readTree(t, []byte(`{"op":0,"d":{"channel_id":"1"},"s":4,"t":"MESSAGE_DELETE"}`)))
	iss, ok := chatskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, []string{chatskema.CodeMissingRequiredField}, iss.At("d.id").Codes())

	_, err = r.DecodeDispatch(ctx, readTree(t, []byte(`{"d":null}`)))
	iss, ok = chatskema.AsIssues(err)
	require.True(t, ok)
	assert.True(t, iss.Has(chatskema.CodeMissingRequiredField))
}
