package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"nycschools/internal/domain"
	"nycschools/pkg/errcodes"
)

func TestAppError(t *testing.T) {
	rq := require.New(t)

	cause := errors.New("connection refused")
	err := fmt.Errorf("paginator.LoadMore: %w",
		domain.WrapError(cause, errcodes.TransportError, "opendata.FetchSchools: request failed"))

	rq.ErrorIs(err, cause)
	rq.True(domain.IsAppError(err))
	rq.True(domain.HasCode(err, errcodes.TransportError))
	rq.False(domain.HasCode(err, errcodes.DecodingError))
	rq.Equal("opendata.FetchSchools: request failed", domain.Message(err))
	rq.EqualError(err, "paginator.LoadMore: opendata.FetchSchools: request failed: connection refused")

	code, ok := domain.GetCode(errors.New("plain"))
	rq.False(ok)
	rq.Empty(code)
	rq.Equal("plain", domain.Message(errors.New("plain")))
}
