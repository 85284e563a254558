// Package assets discovers the image references a session must preload.
//
// Discovery runs once per session: it seeds both sets with the configured
// static first-frame assets, walks the known content locations to build a
// bounded critical set, and walks the entire manifest for an extended set.
// Every candidate passes an allow-list filter; cross-origin references are
// dropped silently rather than surfaced as errors.
package assets
