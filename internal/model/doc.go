// Package model defines the data types shared across cgmlstget.
//
// All types are plain values constructed fresh from live registry
// responses on each invocation; nothing in this package is persisted.
// The scheme detail pages on cgMLST.org vary in which labels they
// contain, so SchemeDetail is an ordered mapping with optional-field
// accessors rather than a fixed struct, and VersionInfo models every
// field as optional.
package model
