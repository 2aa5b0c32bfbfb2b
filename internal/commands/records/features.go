package recordscmd

// FeatureGates exposes the runtime toggles consulted by record handlers.
type FeatureGates struct {
	// MarkdownImportEnabled returns true when markdown post import is active.
	MarkdownImportEnabled func() bool
}

func (g FeatureGates) markdownImportEnabled() bool {
	if g.MarkdownImportEnabled == nil {
		return true
	}
	return g.MarkdownImportEnabled()
}
