package entity

// School is one institution from the school directory. ID is the
// stable external key (DBN); every other attribute may be absent.
type School struct {
	ID               string
	Name             *string
	Description      *string
	Email            *string
	Website          *string
	NeighborhoodArea *string
	Borough          *string
	PhoneNumber      *string
}

// SchoolItem is a School as presented to list consumers, with its
// favorite state resolved at read time.
type SchoolItem struct {
	School
	IsFavorite bool
}
