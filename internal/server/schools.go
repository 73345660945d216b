package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"nycschools/internal/domain"
	"nycschools/internal/domain/entity"
	"nycschools/pkg/contextx"
	"nycschools/pkg/errcodes"
	"nycschools/pkg/httpx/reply"
	"nycschools/pkg/httpx/req"
	"nycschools/pkg/logx"
	"nycschools/pkg/rest"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type schoolList interface {
	CurrentItems(ctx context.Context) []entity.SchoolItem
	State() entity.PageState
	Refresh(ctx context.Context, limit int) (entity.Page, error)
	LoadMore(ctx context.Context) (entity.Page, error)
	ToggleFavorite(ctx context.Context, id string) (bool, error)
	IsFavorite(ctx context.Context, id string) bool
	Favorites(ctx context.Context) ([]string, error)
	SATDetails(ctx context.Context, id string) ([]entity.SchoolSATDetail, error)
}

// SchoolServer обслуживает список школ поверх schoollist.Controller.
type SchoolServer struct {
	schools schoolList
}

func NewSchoolServer(schools schoolList) SchoolServer {
	return SchoolServer{
		schools: schools,
	}
}

// getV1Schools текущий список с флагом избранного и состоянием пагинации.
func (s SchoolServer) getV1Schools(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	state := s.schools.State()

	reply.JSON(ctx, w, http.StatusOK, rest.SchoolList{
		Items:     newRESTSchools(s.schools.CurrentItems(ctx)),
		Offset:    state.Offset,
		Limit:     state.Limit,
		IsLoading: state.IsLoading,
	})

	return nil
}

// postV1SchoolsRefresh перезагружает первую страницу. Тело {"limit"} необязательно.
func (s SchoolServer) postV1SchoolsRefresh(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.RefreshRequest

	if err := req.ReadOptional(r, &request); err != nil {
		return fmt.Errorf("req.ReadOptional: %w", err)
	}

	page, err := s.schools.Refresh(ctx, request.Limit)
	if err != nil {
		return fmt.Errorf("schools.Refresh: %w", err)
	}

	s.replyPage(ctx, w, page)

	return nil
}

// postV1SchoolsMore догружает следующую страницу, skipped=true если загрузка уже идёт.
func (s SchoolServer) postV1SchoolsMore(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	page, err := s.schools.LoadMore(ctx)
	if err != nil {
		return fmt.Errorf("schools.LoadMore: %w", err)
	}

	s.replyPage(ctx, w, page)

	return nil
}

// getV1SchoolSAT SAT-результаты школы, из кэша если свежие.
func (s SchoolServer) getV1SchoolSAT(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := schoolID(r)
	if err != nil {
		return err
	}

	details, err := s.schools.SATDetails(ctx, id)
	if err != nil {
		return fmt.Errorf("schools.SATDetails: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSATDetails(details))

	return nil
}

func (s SchoolServer) getV1SchoolFavorite(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := schoolID(r)
	if err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Favorite{ID: id, IsFavorite: s.schools.IsFavorite(ctx, id)})

	return nil
}

// postV1SchoolFavorite переключает избранное и возвращает новое состояние.
func (s SchoolServer) postV1SchoolFavorite(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := schoolID(r)
	if err != nil {
		return err
	}

	isFavorite, err := s.schools.ToggleFavorite(ctx, id)
	if err != nil {
		return fmt.Errorf("schools.ToggleFavorite: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Favorite{ID: id, IsFavorite: isFavorite})

	return nil
}

func (s SchoolServer) getV1Favorites(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	ids, err := s.schools.Favorites(ctx)
	if err != nil {
		return fmt.Errorf("schools.Favorites: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Favorites{IDs: lo.Ternary(ids == nil, []string{}, ids)})

	return nil
}

func (s SchoolServer) replyPage(ctx context.Context, w http.ResponseWriter, page entity.Page) {
	ids, err := s.schools.Favorites(ctx)
	if err != nil {
		logger(ctx).Error("schools.Favorites", logx.Error(err))
	}

	items := lo.Map(page.Items, func(school entity.School, _ int) entity.SchoolItem {
		return entity.SchoolItem{School: school, IsFavorite: school.ID != "" && lo.Contains(ids, school.ID)}
	})

	reply.JSON(ctx, w, http.StatusOK, newRESTPage(page, items, s.schools.State()))
}

func schoolID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return "", domain.NewError(errcodes.InvalidSchoolID, "school id is required")
	}

	return id, nil
}
