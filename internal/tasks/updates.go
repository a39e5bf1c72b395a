package tasks

import "fmt"

// ProgressUpdate represents a progress event during an export run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase, 0 when unknown
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ScanPlatforms Phase = iota
	ParseGames
	ParsePlaylists
	BuildFolders
	WriteOutputs
	Done
)

func (p Phase) String() string {
	switch p {
	case ScanPlatforms:
		return "scan_platforms"
	case ParseGames:
		return "parse_games"
	case ParsePlaylists:
		return "parse_playlists"
	case BuildFolders:
		return "build_folders"
	case WriteOutputs:
		return "write_outputs"
	case Done:
		return "done"
	default:
		return ""
	}
}

func scanUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanPlatforms,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Found %d platform descriptors...", total),
	}
}

func gameParsedUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseGames,
		Step:    count,
		Message: fmt.Sprintf("Parsed %d games...", count),
	}
}

func platformParsedUpdate(step, total int, platform string, games int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseGames,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Parsed %s (%d games)...", platform, games),
		Data:    platform,
	}
}

func playlistsUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParsePlaylists,
		Step:    count,
		Total:   count,
		Message: fmt.Sprintf("Resolved %d playlists...", count),
	}
}

func foldersUpdate(root string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BuildFolders,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Built folder tree rooted at %q...", root),
	}
}

func writeUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteOutputs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Writing %s...", path),
	}
}

func doneUpdate(games, playlists int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Exported %d games and %d playlists", games, playlists),
	}
}
