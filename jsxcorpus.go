// Package jsxcorpus turns crawled HTML pages into a budgeted collection of
// component-template training pairs and a conversational dataset.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, charclass/).
package jsxcorpus
