// Package discord describes Discord message records, gateway events and REST
// parameters as chatskema schemas.
//
// Every record is a plain struct paired with a package-level schema
// (UserSchema, MessageSchema, ...). Fields that Discord documents as optional
// use chatskema.Optional so that a missing key, an explicit null and a value
// stay distinct when a payload is decoded and encoded again. Identifiers are
// chatskema.ID and always encode as strings.
//
// Message keeps keys it does not know in Message.Extra and emits them again,
// so relaying a message through this package does not drop fields added by
// newer API versions.
package discord
