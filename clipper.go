// Package clipper provides a search-driven article clipping tool.
// It fetches web pages returned by a search query, extracts the
// substantive article content from arbitrary HTML, classifies the
// extraction into a quality tier, and persists structured records
// with images, metadata, and user tags.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// goquery/, rod/, openai/).
package clipper
