package discord

import (
	"time"

	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/dsl"
)

// User is a Discord user.
type User struct {
	ID            chatskema.ID
	Username      string
	Discriminator string
	GlobalName    chatskema.Optional[string]
	Avatar        chatskema.Optional[string]
	Bot           chatskema.Optional[bool]
	System        chatskema.Optional[bool]
	PublicFlags   chatskema.Optional[int]
}

// DisplayName returns the global name when set, else the username.
func (u User) DisplayName() string {
	if n, ok := u.GlobalName.Get(); ok && n != "" {
		return n
	}
	return u.Username
}

var UserSchema = dsl.Object[User]("User").
	Fields(
		dsl.Req("id", dsl.Snowflake(), func(u *User) *chatskema.ID { return &u.ID }),
		dsl.Req("username", dsl.String(), func(u *User) *string { return &u.Username }),
		dsl.Req("discriminator", dsl.String(), func(u *User) *string { return &u.Discriminator }),
		dsl.Nullable("global_name", dsl.String(), func(u *User) *chatskema.Optional[string] { return &u.GlobalName }),
		dsl.Nullable("avatar", dsl.String(), func(u *User) *chatskema.Optional[string] { return &u.Avatar }),
		dsl.Opt("bot", dsl.Bool(), func(u *User) *chatskema.Optional[bool] { return &u.Bot }),
		dsl.Opt("system", dsl.Bool(), func(u *User) *chatskema.Optional[bool] { return &u.System }),
		dsl.Opt("public_flags", dsl.Int(), func(u *User) *chatskema.Optional[int] { return &u.PublicFlags }),
	).
	MustBuild()

// Member is a user's membership in a guild.
type Member struct {
	User                       chatskema.Optional[User]
	Nick                       chatskema.Optional[string]
	Avatar                     chatskema.Optional[string]
	Roles                      []chatskema.ID
	JoinedAt                   time.Time
	PremiumSince               chatskema.Optional[time.Time]
	Deaf                       bool
	Mute                       bool
	Flags                      chatskema.Optional[int]
	Pending                    chatskema.Optional[bool]
	Permissions                chatskema.Optional[string]
	CommunicationDisabledUntil chatskema.Optional[time.Time]
}

var MemberSchema = dsl.Object[Member]("Member").
	Fields(
		dsl.Opt("user", dsl.Record(UserSchema), func(m *Member) *chatskema.Optional[User] { return &m.User }),
		dsl.Nullable("nick", dsl.String(), func(m *Member) *chatskema.Optional[string] { return &m.Nick }),
		dsl.Nullable("avatar", dsl.String(), func(m *Member) *chatskema.Optional[string] { return &m.Avatar }),
		dsl.Req("roles", dsl.ArrayOf(dsl.Snowflake()), func(m *Member) *[]chatskema.ID { return &m.Roles }),
		dsl.Req("joined_at", dsl.Timestamp(), func(m *Member) *time.Time { return &m.JoinedAt }),
		dsl.Nullable("premium_since", dsl.Timestamp(), func(m *Member) *chatskema.Optional[time.Time] { return &m.PremiumSince }),
		dsl.Req("deaf", dsl.Bool(), func(m *Member) *bool { return &m.Deaf }),
		dsl.Req("mute", dsl.Bool(), func(m *Member) *bool { return &m.Mute }),
		dsl.Opt("flags", dsl.Int(), func(m *Member) *chatskema.Optional[int] { return &m.Flags }),
		dsl.Opt("pending", dsl.Bool(), func(m *Member) *chatskema.Optional[bool] { return &m.Pending }),
		dsl.Opt("permissions", dsl.String(), func(m *Member) *chatskema.Optional[string] { return &m.Permissions }),
		dsl.Nullable("communication_disabled_until", dsl.Timestamp(),
			func(m *Member) *chatskema.Optional[time.Time] { return &m.CommunicationDisabledUntil }),
	).
	MustBuild()
