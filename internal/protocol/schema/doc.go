// Package schema owns the declarative value definitions a game manifest is
// built from.
//
// Ownership boundary:
// - Range variants (bounded, unbound, boolean) with sampling and
//   normalization
// - Value variants describing scalar, vector and pixel-grid quantities
// - the static type-tag registries used to decode either from JSON
package schema
