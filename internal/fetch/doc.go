// Package fetch downloads a quarter of lesson sources from the SabbathSchool
// lessons repository on GitHub and combines them into the "# File:" tagged
// form read by the lesson parser.
//
// Files live under {base}/{decade}s/{year}/{quarter}/{lang}/: contents.json
// lists the weeks in order, front-matter.md and back-matter.md are optional,
// and each week is {id}.md.
package fetch
