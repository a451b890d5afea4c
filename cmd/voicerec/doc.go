// Package main hosts the voicerec CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into project
// operations: starting and resuming project directories, merging prompt
// lists, accepting and removing recordings, scoring audio quality, archive
// export, journal inspection, and configuration scaffolding. It centralizes
// configuration resolution, logging setup, and project locking so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
