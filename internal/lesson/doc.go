// Package lesson parses historical lesson markdown into a normalized model.
//
// The parser is line-oriented and heuristic. A combined source document is
// split into file sections (front matter, back matter, weekly lessons), the
// lesson bodies are split on "# LESSON n" markers, and every block runs
// through a classifier that walks a fixed sequence of states:
//
//	header → title search → date search → location search →
//	preliminary note → section scan → done
//
// Section scanning carries a one-way latch: once a lesson shows a notes or
// any other non-question section, later numbered lists are ordinary content
// and never become questions.
//
// Nothing in this package performs I/O. Parse never fails on odd input; a
// block without a recognizable lesson number is skipped and problems that
// the caller should know about are reported as Document warnings.
package lesson
