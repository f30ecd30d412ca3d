package parsers

// ProgressReporter provides callbacks for reporting load progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnLoadStart is called once with the number of entry files.
	OnLoadStart(entryFiles int)

	// OnFileDiscovered is called when an import adds a file to the queue.
	OnFileDiscovered(fileName string)

	// OnFileParsed is called after each file is parsed.
	OnFileParsed(fileName string)

	// OnLoadComplete is called when every reachable file is parsed and bound.
	OnLoadComplete(files int)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnLoadStart(entryFiles int)       {}
func (n *NoOpProgressReporter) OnFileDiscovered(fileName string) {}
func (n *NoOpProgressReporter) OnFileParsed(fileName string)     {}
func (n *NoOpProgressReporter) OnLoadComplete(files int)         {}
