// Package tasks orchestrates the export pipeline with real-time progress reporting.
//
// The core abstraction is [ExportEngine], which parses platform
// descriptors concurrently, resolves playlists and relationships, and
// writes the output documents. Operations emit progress updates via
// channels for non-blocking status reporting to CLI/UI layers; all
// cross-goroutine coordination happens over channels.
package tasks
