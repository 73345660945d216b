package entity

// Page describes the outcome of one paginated fetch.
type Page struct {
	// Items holds the records appended to the list, after id dedup.
	Items []School
	// Received is the raw record count returned by the server.
	Received int
	Initial  bool
	// Skipped is set when the call was rejected by the in-flight guard
	// or its result arrived for a list that had been reset meanwhile.
	Skipped   bool
	EndOfData bool
}

type PageState struct {
	Offset    int
	Limit     int
	IsLoading bool
	Size      int
}
