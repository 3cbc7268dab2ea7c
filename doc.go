// Package chatskema converts chat-platform payloads between the JSON wire
// tree and typed Go records.
//
// A Schema[T] describes one record: its field keys, the presence policy of
// each field (required, optional, optional-nullable) and how unknown keys are
// treated. Schemas are built with the dsl package; the Discord records live
// in package discord.
//
// Decoding never stops at the first bad field unless fail-fast is requested.
// Every failure is an Issue with a dotted path (author.id, embeds[2].title)
// and a stable code, collected into one Issues error.
//
// Typical usage:
//
//	msg, err := chatskema.DecodeJSON(ctx, discord.MessageSchema, data)
//	if iss, ok := chatskema.AsIssues(err); ok {
//		for _, it := range iss {
//			log.Println(it)
//		}
//	}
//	out, err := chatskema.EncodeJSON(ctx, discord.MessageSchema, msg)
//
// Bytes are read through a pluggable JSONDriver (goccy/go-json by default)
// that enforces duplicate-key, depth and size limits; see DecodeOpt.
package chatskema
