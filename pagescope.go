// Package pagescope fetches a single web page and reports a catalog of
// fields derived from it: title, meta tags, links, media, structured data,
// forms, headings, tables, contact details and text analytics.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, trafilatura/).
package pagescope
