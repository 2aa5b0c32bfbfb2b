package thumbnailscmd

// FeatureGates exposes the runtime toggles consulted by thumbnail handlers.
type FeatureGates struct {
	// ThumbnailsEnabled returns true when thumbnail management is active.
	ThumbnailsEnabled func() bool
}

func (g FeatureGates) thumbnailsEnabled() bool {
	if g.ThumbnailsEnabled == nil {
		return true
	}
	return g.ThumbnailsEnabled()
}
