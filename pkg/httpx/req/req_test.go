package req_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"nycschools/pkg/httpx/req"
)

type refreshRequest struct {
	Limit int `json:"limit" validate:"omitempty,min=1,max=1000"`
}

func TestReadOptional(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		body    string
		limit   int
		invalid bool
	}{
		{name: "Empty body", body: "", limit: 0},
		{name: "Limit set", body: `{"limit":50}`, limit: 50},
		{name: "Limit too large", body: `{"limit":5000}`, invalid: true},
		{name: "Broken JSON", body: `{"limit":`, invalid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/v1/schools/refresh", strings.NewReader(tc.body))

			var dest refreshRequest

			err := req.ReadOptional(r, &dest)
			if tc.invalid {
				rq.Error(err)
				rq.True(failure.IsInvalidArgumentError(err))

				return
			}

			rq.NoError(err)
			rq.Equal(tc.limit, dest.Limit)
		})
	}
}
