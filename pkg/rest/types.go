// REST models of the school list API.
package rest

type School struct {
	ID               string  `json:"id"`
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	Email            *string `json:"email"`
	Website          *string `json:"website"`
	NeighborhoodArea *string `json:"neighborhoodArea"`
	Borough          *string `json:"borough"`
	PhoneNumber      *string `json:"phoneNumber"`
	IsFavorite       bool    `json:"isFavorite"`
}

type SchoolSATDetail struct {
	ID              *string `json:"id"`
	Name            *string `json:"name"`
	TestTakerCount  *string `json:"testTakerCount"`
	ReadingAvgScore *string `json:"readingAvgScore"`
	MathAvgScore    *string `json:"mathAvgScore"`
	WritingAvgScore *string `json:"writingAvgScore"`
}

type SchoolList struct {
	Items     []School `json:"items"`
	Offset    int      `json:"offset"`
	Limit     int      `json:"limit"`
	IsLoading bool     `json:"isLoading"`
}

// Page is the reply to refresh and load-more calls.
type Page struct {
	Items     []School `json:"items"`
	Received  int      `json:"received"`
	Initial   bool     `json:"initial"`
	Skipped   bool     `json:"skipped"`
	EndOfData bool     `json:"endOfData"`
	Offset    int      `json:"offset"`
	Total     int      `json:"total"`
}

type RefreshRequest struct {
	Limit int `json:"limit" validate:"omitempty,min=1,max=1000"`
}

type Favorite struct {
	ID         string `json:"id"`
	IsFavorite bool   `json:"isFavorite"`
}

type Favorites struct {
	IDs []string `json:"ids"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке
	Message string `json:"message"`

	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
