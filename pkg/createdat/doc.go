// Package createdat resolves a media file's capture instant from its
// metadata tags.
//
// A date is taken from the first present date tag. Its offset comes from
// the first parseable offset tag, then from any offset suffix on the date
// itself, and otherwise the date is read as wall-clock time in a local zone.
package createdat
