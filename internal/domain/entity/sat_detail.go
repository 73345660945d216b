package entity

// SchoolSATDetail holds SAT statistics for one school. The upstream API
// reports scores as strings and they are kept verbatim.
type SchoolSATDetail struct {
	ID              *string
	Name            *string
	TestTakerCount  *string
	ReadingAvgScore *string
	MathAvgScore    *string
	WritingAvgScore *string
}
