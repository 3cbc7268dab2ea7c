package chatskema_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/i18n"
)

func TestIssues_Rebase(t *testing.T) {
	iss := chatskema.Issues{
		{Path: "", Code: chatskema.CodeTypeMismatch},
		{Path: "id", Code: chatskema.CodeInvalidIdentifierFormat},
		{Path: "[2].id", Code: chatskema.CodeMissingRequiredField},
	}
	got := iss.Rebase("mentions")
	assert.Equal(t, "mentions", got[0].Path)
	assert.Equal(t, "mentions.id", got[1].Path)
	assert.Equal(t, "mentions[2].id", got[2].Path)
	assert.Equal(t, "id", iss[1].Path)
	assert.Equal(t, iss, iss.Rebase(""))
}

func TestIssues_Query(t *testing.T) {
	iss := chatskema.Issues{
		{Path: "author", Code: chatskema.CodeMissingRequiredField},
		{Path: "author.id", Code: chatskema.CodeInvalidIdentifierFormat},
		{Path: "timestamp", Code: chatskema.CodeInvalidTimestampFormat},
		{Path: "author", Code: chatskema.CodeUnexpectedNull},
	}
	assert.Len(t, iss.At("author"), 2)
	assert.Empty(t, iss.At("auth"))
	assert.True(t, iss.Has(chatskema.CodeInvalidTimestampFormat))
	assert.False(t, iss.Has(chatskema.CodeUnknownKey))
	assert.Equal(t, "missing_required_field at author; invalid_identifier_format at author.id; invalid_timestamp_format at timestamp; ... (total 4)", iss.Error())
}

func TestAsIssues(t *testing.T) {
	iss := chatskema.Issues{{Path: "id", Code: chatskema.CodeTypeMismatch}}
	wrapped := fmt.Errorf("decode: %w", iss)

	got, ok := chatskema.AsIssues(wrapped)
	require.True(t, ok)
	assert.Equal(t, iss, got)

	_, ok = chatskema.AsIssues(errors.New("boom"))
	assert.False(t, ok)
	assert.Equal(t, chatskema.CodeParseError, chatskema.ToIssues(errors.New("boom"))[0].Code)
	assert.Nil(t, chatskema.ToIssues(nil))
}

func TestNewIssue_Localized(t *testing.T) {
	t.Cleanup(func() { i18n.SetLanguage("en") })

	it := chatskema.NewIssue("author", chatskema.CodeMissingRequiredField, nil, nil)
	assert.NotEmpty(t, it.Message)
	assert.Equal(t, "missing_required_field at author: "+it.Message, it.String())

	i18n.SetLanguage("ja")
	ja := chatskema.NewIssue("author", chatskema.CodeMissingRequiredField, nil, nil)
	assert.NotEqual(t, it.Message, ja.Message)

	root := chatskema.Issue{Code: chatskema.CodeTruncated}
	assert.Equal(t, "truncated at <root>", root.String())
}
