// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the ExportEngine, providing
// non-blocking status reporting while the export runs.
package ui
