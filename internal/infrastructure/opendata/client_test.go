package opendata_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"nycschools/internal/domain"
	"nycschools/internal/infrastructure/opendata"
	"nycschools/pkg/errcodes"
)

const schoolsBody = `[
	{"dbn":"01M292","school_name":"Henry Street School","overview_paragraph":"Small school.","phone_number":"212-524-4360",
	 "school_email":"admin@henry.org","website":"henry.org","nta":"Lower East Side","borough":"MANHATTAN"},
	{"dbn":"01M448","school_name":"University Neighborhood High School"}
]`

const satBody = `[{"dbn":"01M292","school_name":"HENRY STREET SCHOOL","num_of_sat_test_takers":"29",
	"sat_critical_reading_avg_score":"355","sat_math_avg_score":"404","sat_writing_avg_score":"363"}]`

func newClient(t *testing.T, handler http.HandlerFunc) (*opendata.Client, *int32, *prometheus.Registry) {
	t.Helper()

	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	reg := prometheus.NewRegistry()

	client := opendata.NewClient(opendata.Config{
		SchoolListURL: srv.URL + "/resource/s3k6-pzi2.json",
		SATDetailURL:  srv.URL + "/resource/f9bf-2cp4.json",
	}, opendata.WithRegisterer(reg))

	return client, &calls, reg
}

func TestFetchSchoolsQuery(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name   string
		offset int
		limit  int
	}{
		{name: "First page", offset: 0, limit: 20},
		{name: "Later page", offset: 40, limit: 20},
		{name: "Single record", offset: 7, limit: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotOffset, gotLimit, gotPath string

			client, calls, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotOffset = r.URL.Query().Get("$offset")
				gotLimit = r.URL.Query().Get("$limit")
				w.Write([]byte(`[]`))
			})

			schools, err := client.FetchSchools(context.Background(), tc.offset, tc.limit)
			rq.NoError(err)
			rq.Empty(schools)

			rq.Equal(int32(1), atomic.LoadInt32(calls))
			rq.Equal("/resource/s3k6-pzi2.json", gotPath)
			rq.Equal(strconv.Itoa(tc.offset), gotOffset)
			rq.Equal(strconv.Itoa(tc.limit), gotLimit)
		})
	}
}

func TestFetchSchoolsDecoding(t *testing.T) {
	rq := require.New(t)

	client, _, reg := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(schoolsBody))
	})

	schools, err := client.FetchSchools(context.Background(), 0, 2)
	rq.NoError(err)
	rq.Len(schools, 2)

	full := schools[0]
	rq.Equal("01M292", full.ID)
	rq.Equal("Henry Street School", *full.Name)
	rq.Equal("Small school.", *full.Description)
	rq.Equal("212-524-4360", *full.PhoneNumber)
	rq.Equal("admin@henry.org", *full.Email)
	rq.Equal("henry.org", *full.Website)
	rq.Equal("Lower East Side", *full.NeighborhoodArea)
	rq.Equal("MANHATTAN", *full.Borough)

	sparse := schools[1]
	rq.Equal("01M448", sparse.ID)
	rq.NotNil(sparse.Name)
	rq.Nil(sparse.Description)
	rq.Nil(sparse.Email)
	rq.Nil(sparse.Website)
	rq.Nil(sparse.NeighborhoodArea)
	rq.Nil(sparse.Borough)
	rq.Nil(sparse.PhoneNumber)

	metrics, err := reg.Gather()
	rq.NoError(err)
	rq.NotEmpty(metrics)
}

func TestFetchSchoolsErrors(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		handler http.HandlerFunc
		offset  int
		limit   int
		code    string
		calls   int32
	}{
		{
			name:    "Body is not an array",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte(`{"error":true}`)) },
			limit:   10,
			code:    errcodes.DecodingError.String(),
			calls:   1,
		},
		{
			name:    "Body is not JSON",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte(`<html>`)) },
			limit:   10,
			code:    errcodes.DecodingError.String(),
			calls:   1,
		},
		{
			name:    "Field has wrong type",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte(`[{"dbn":1}]`)) },
			limit:   10,
			code:    errcodes.DecodingError.String(),
			calls:   1,
		},
		{
			name:    "Server error",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			limit:   10,
			code:    errcodes.TransportError.String(),
			calls:   1,
		},
		{
			name:    "Negative offset",
			handler: func(http.ResponseWriter, *http.Request) {},
			offset:  -1,
			limit:   10,
			code:    errcodes.InvalidPaging.String(),
		},
		{
			name:    "Zero limit",
			handler: func(http.ResponseWriter, *http.Request) {},
			code:    errcodes.InvalidPaging.String(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, calls, _ := newClient(t, tc.handler)

			schools, err := client.FetchSchools(context.Background(), tc.offset, tc.limit)
			rq.Error(err)
			rq.Nil(schools)

			code, ok := domain.GetCode(err)
			rq.True(ok)
			rq.Equal(tc.code, code.String())
			rq.Contains(err.Error(), "opendata.FetchSchools")
			rq.Equal(tc.calls, atomic.LoadInt32(calls))
		})
	}
}

func TestFetchSchoolsTransportError(t *testing.T) {
	rq := require.New(t)

	cause := errors.New("dial tcp: connection refused")

	client := opendata.NewClient(opendata.Config{
		SchoolListURL: "https://data.example.org/resource/schools.json",
		SATDetailURL:  "https://data.example.org/resource/sat.json",
	}, opendata.WithTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, cause
	})))

	_, err := client.FetchSchools(context.Background(), 0, 10)
	rq.True(domain.HasCode(err, errcodes.TransportError))
	rq.ErrorIs(err, cause)
}

func TestFetchSchoolsConfigurationError(t *testing.T) {
	rq := require.New(t)

	var called bool

	for _, base := range []string{"://broken", "relative/path.json"} {
		client := opendata.NewClient(opendata.Config{SchoolListURL: base, SATDetailURL: base},
			opendata.WithTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
				called = true
				return nil, errors.New("unexpected call")
			})))

		_, err := client.FetchSchools(context.Background(), 0, 10)
		rq.True(domain.HasCode(err, errcodes.ConfigurationError), base)

		_, err = client.FetchSchoolSATDetails(context.Background(), "01M292")
		rq.True(domain.HasCode(err, errcodes.ConfigurationError), base)
	}

	rq.False(called)
}

func TestFetchSchoolSATDetails(t *testing.T) {
	rq := require.New(t)

	var gotDBN, gotPath string

	client, calls, reg := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDBN = r.URL.Query().Get("dbn")
		w.Write([]byte(satBody))
	})

	details, err := client.FetchSchoolSATDetails(context.Background(), "01M292")
	rq.NoError(err)
	rq.Len(details, 1)
	rq.Equal("/resource/f9bf-2cp4.json", gotPath)
	rq.Equal("01M292", gotDBN)

	d := details[0]
	rq.Equal("01M292", *d.ID)
	rq.Equal("HENRY STREET SCHOOL", *d.Name)
	rq.Equal("29", *d.TestTakerCount)
	rq.Equal("355", *d.ReadingAvgScore)
	rq.Equal("404", *d.MathAvgScore)
	rq.Equal("363", *d.WritingAvgScore)

	_, err = client.FetchSchoolSATDetails(context.Background(), "")
	rq.True(domain.HasCode(err, errcodes.ConfigurationError))
	rq.Contains(err.Error(), "opendata.FetchSchoolSATDetails")
	rq.Equal(int32(1), atomic.LoadInt32(calls))

	series, err := testutil.GatherAndCount(reg, "nycschools_opendata_requests_total")
	rq.NoError(err)
	rq.Equal(2, series)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
