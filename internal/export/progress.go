package export

// Progress is emitted once per batch item as it starts.
type Progress struct {
	// CurrentIndex is the 1-based position of the item.
	CurrentIndex int `json:"currentIndex"`

	// Total is the number of items in the run.
	Total int `json:"total"`

	// FileName is the display name of the item.
	FileName string `json:"fileName"`
}

// ProgressFunc receives progress events. It is called on the goroutine
// running the batch and should return quickly.
type ProgressFunc func(p Progress)
