// Package app implements the GrowLens terminal user interface.
//
// A single Bubble Tea model routes between the auth screens (welcome, login,
// signup) and the tabbed shell (home, assessment, location, settings). The
// only asynchronous work is the photo submission on the assessment screen,
// which runs as a tea.Cmd and reports back with a submissionDoneMsg.
package app
