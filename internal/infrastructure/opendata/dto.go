package opendata

import "nycschools/internal/domain/entity"

// schoolSchema mirrors one record of the school directory dataset.
type schoolSchema struct {
	DBN               *string `json:"dbn"`
	SchoolName        *string `json:"school_name"`
	OverviewParagraph *string `json:"overview_paragraph"`
	PhoneNumber       *string `json:"phone_number"`
	SchoolEmail       *string `json:"school_email"`
	Website           *string `json:"website"`
	NTA               *string `json:"nta"`
	Borough           *string `json:"borough"`
}

func (s schoolSchema) toDomain() entity.School {
	var id string
	if s.DBN != nil {
		id = *s.DBN
	}

	return entity.School{
		ID:               id,
		Name:             s.SchoolName,
		Description:      s.OverviewParagraph,
		Email:            s.SchoolEmail,
		Website:          s.Website,
		NeighborhoodArea: s.NTA,
		Borough:          s.Borough,
		PhoneNumber:      s.PhoneNumber,
	}
}

// satDetailSchema mirrors one record of the SAT results dataset.
type satDetailSchema struct {
	DBN                *string `json:"dbn"`
	SchoolName         *string `json:"school_name"`
	NumOfSATTestTakers *string `json:"num_of_sat_test_takers"`
	CriticalReadingAvg *string `json:"sat_critical_reading_avg_score"`
	MathAvg            *string `json:"sat_math_avg_score"`
	WritingAvg         *string `json:"sat_writing_avg_score"`
}

func (s satDetailSchema) toDomain() entity.SchoolSATDetail {
	return entity.SchoolSATDetail{
		ID:              s.DBN,
		Name:            s.SchoolName,
		TestTakerCount:  s.NumOfSATTestTakers,
		ReadingAvgScore: s.CriticalReadingAvg,
		MathAvgScore:    s.MathAvg,
		WritingAvgScore: s.WritingAvg,
	}
}
