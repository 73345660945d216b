package server

import (
	"github.com/samber/lo"

	"nycschools/internal/domain/entity"
	"nycschools/pkg/rest"
)

func newRESTSchool(item entity.SchoolItem) rest.School {
	return rest.School{
		ID:               item.ID,
		Name:             item.Name,
		Description:      item.Description,
		Email:            item.Email,
		Website:          item.Website,
		NeighborhoodArea: item.NeighborhoodArea,
		Borough:          item.Borough,
		PhoneNumber:      item.PhoneNumber,
		IsFavorite:       item.IsFavorite,
	}
}

func newRESTSchools(items []entity.SchoolItem) []rest.School {
	return lo.Map(items, func(item entity.SchoolItem, _ int) rest.School {
		return newRESTSchool(item)
	})
}

func newRESTSATDetails(details []entity.SchoolSATDetail) []rest.SchoolSATDetail {
	return lo.Map(details, func(d entity.SchoolSATDetail, _ int) rest.SchoolSATDetail {
		return rest.SchoolSATDetail{
			ID:              d.ID,
			Name:            d.Name,
			TestTakerCount:  d.TestTakerCount,
			ReadingAvgScore: d.ReadingAvgScore,
			MathAvgScore:    d.MathAvgScore,
			WritingAvgScore: d.WritingAvgScore,
		}
	})
}

// newRESTPage дополняет результат загрузки текущим окном пагинации.
func newRESTPage(page entity.Page, items []entity.SchoolItem, state entity.PageState) rest.Page {
	return rest.Page{
		Items:     newRESTSchools(items),
		Received:  page.Received,
		Initial:   page.Initial,
		Skipped:   page.Skipped,
		EndOfData: page.EndOfData,
		Offset:    state.Offset,
		Total:     state.Size,
	}
}
