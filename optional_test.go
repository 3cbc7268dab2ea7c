package chatskema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	chatskema "github.com/reoring/chatskema"
)

func TestOptional(t *testing.T) {
	var zero chatskema.Optional[string]
	assert.True(t, zero.IsAbsent())
	assert.Equal(t, chatskema.Absent[string](), zero)
	assert.Nil(t, zero.Ptr())
	assert.Equal(t, "absent", zero.String())

	null := chatskema.Null[string]()
	assert.True(t, null.IsNull())
	assert.False(t, null.IsSet())
	assert.Equal(t, "def", null.Or("def"))
	assert.Equal(t, chatskema.PresenceNull, null.State())

	some := chatskema.Some("")
	v, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, "", v)
	assert.Equal(t, "", some.Or("def"))
	assert.Equal(t, "Some()", some.String())

	p := some.Ptr()
	*p = "changed"
	assert.Equal(t, "", some.Or("def"))
}

func TestPresence_String(t *testing.T) {
	assert.Equal(t, "value", chatskema.PresenceValue.String())
	assert.Equal(t, "presence(9)", chatskema.Presence(9).String())
	assert.Equal(t, "optional-nullable", chatskema.PolicyOptionalNullable.String())
}
