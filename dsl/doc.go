// Package dsl provides the schema DSL used to describe records for chatskema.
//
// Overview
//   - Builder API: declare a record with Object[R](name), bind fields with
//     Req/Opt/Nullable and freeze it with Build()/MustBuild().
//   - Types: String()/Bool()/Int()/Float()/Snowflake()/Timestamp()/Raw(),
//     IntOf/StringOf/Enum for named scalar types, ArrayOf(elem), Record(s),
//     Via(type, codec) for custom scalars, Lazy/PtrTo for recursive records.
//   - Presence: Opt and Nullable fields store chatskema.Optional[V], so absent,
//     null and a value stay distinct across decode and encode.
//   - Unknown keys: Strip() (default), Strict() or Passthrough(accessor).
//   - Unions: Union (discriminator inside the value) and SiblingUnion
//     (discriminator in the enclosing record), with Case per variant and an
//     optional Fallback for forward compatibility.
//   - Reconcile: steps run after a successful decode to relate fields, such as
//     a deprecated field and its replacement.
//
// File layout (roles)
//   - primitives.go: Type interface, decode scope and scalar types.
//   - codec_wrap.go: Via, adapting a chatskema.Codec into a Type.
//   - array.go: ArrayOf, Record, Enum, Lazy and PtrTo.
//   - field.go: Field bindings and presence policies.
//   - object_builder.go: Builder and Build validation.
//   - object_core.go: Schema decode/encode/JSON Schema.
//   - union.go: discriminated unions.
//
// Design guidelines
//   - Schemas are built once and never mutated; decode and encode are safe for
//     concurrent use.
//   - Decoding aggregates every issue in declaration order unless the context
//     requests fail-fast (chatskema.WithFailFast).
package dsl
