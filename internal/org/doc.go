// Package org parses headline titles of Org-style outline documents.
//
// A headline is a line of one or more '*' markers followed by an optional
// state keyword, an optional [#A] priority cookie, the title text and a
// trailing :tag1:tag2: block. ParseTitle also picks up the planning line and
// PROPERTIES drawer that may follow the headline.
//
// Parsing is pure and allocation-light: returned strings are slices of the
// input. Title.Detach produces a copy independent of the input buffer.
package org
