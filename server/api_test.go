package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/DrmagicE/gcolor"
	"github.com/DrmagicE/gcolor/pkg/packedcolor"
)

func newTestRouter(t *testing.T) (*mux.Router, *MockColorService) {
	ctrl := gomock.NewController(t)
	ms := NewMockColorService(ctrl)
	r := mux.NewRouter()
	registerAPI(r, ms)
	return r, ms
}

func doRequest(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAPI_SetColor(t *testing.T) {
	a := assert.New(t)
	r, ms := newTestRouter(t)
	cell := Cell{Participant: 12, Test: 3, Subject: 4}
	ms.EXPECT().SetColor(gomock.Any(), cell, gcolor.Blue).Return(nil)
	rec := doRequest(r, http.MethodPut, "/v1/participants/12/tests/3/subjects/4", `{"color":"blue"}`)
	a.Equal(http.StatusOK, rec.Code)
	a.JSONEq(`{"participant":12,"test":3,"subject":4,"code":3,"label":"blue"}`, rec.Body.String())

	ms.EXPECT().SetColor(gomock.Any(), cell, gcolor.Yellow).Return(nil)
	rec = doRequest(r, http.MethodPut, "/v1/participants/12/tests/3/subjects/4?lang=fa", `{"color":"1"}`)
	a.Equal(http.StatusOK, rec.Code)
	a.JSONEq(`{"participant":12,"test":3,"subject":4,"code":1,"label":"زرد"}`, rec.Body.String())
}

func TestAPI_SetColor_InvalidInput(t *testing.T) {
	var tt = []struct {
		caseName string
		target   string
		body     string
	}{
		{caseName: "bad_participant", target: "/v1/participants/x/tests/1/subjects/1", body: `{"color":"red"}`},
		{caseName: "bad_color", target: "/v1/participants/1/tests/1/subjects/1", body: `{"color":"purple"}`},
		{caseName: "color_out_of_range", target: "/v1/participants/1/tests/1/subjects/1", body: `{"color":"6"}`},
		{caseName: "malformed_body", target: "/v1/participants/1/tests/1/subjects/1", body: `{`},
	}
	for _, v := range tt {
		t.Run(v.caseName, func(t *testing.T) {
			a := assert.New(t)
			r, _ := newTestRouter(t)
			rec := doRequest(r, http.MethodPut, v.target, v.body)
			a.Equal(http.StatusBadRequest, rec.Code)
			a.Contains(rec.Body.String(), "invalid input")
		})
	}
}

func TestAPI_ServiceErrors(t *testing.T) {
	a := assert.New(t)
	r, ms := newTestRouter(t)
	ms.EXPECT().GetColor(gomock.Any(), Cell{Participant: 0, Test: 1, Subject: 1}).
		Return(gcolor.Red, errors.Wrap(ErrInvalidInput, "participant must be in [1,10], got 0"))
	rec := doRequest(r, http.MethodGet, "/v1/participants/0/tests/1/subjects/1", "")
	a.Equal(http.StatusBadRequest, rec.Code)

	ms.EXPECT().Averages(gomock.Any()).Return(nil, context.DeadlineExceeded)
	rec = doRequest(r, http.MethodGet, "/v1/stats/averages", "")
	a.Equal(http.StatusInternalServerError, rec.Code)
}

func TestAPI_GetColor(t *testing.T) {
	a := assert.New(t)
	r, ms := newTestRouter(t)
	ms.EXPECT().GetColor(gomock.Any(), Cell{Participant: 1, Test: 2, Subject: 3}).Return(gcolor.Green, nil)
	rec := doRequest(r, http.MethodGet, "/v1/participants/1/tests/2/subjects/3", "")
	a.Equal(http.StatusOK, rec.Code)
	a.JSONEq(`{"participant":1,"test":2,"subject":3,"code":2,"label":"green"}`, rec.Body.String())
	a.Equal("application/json", rec.Header().Get("Content-Type"))
}

func TestAPI_Averages(t *testing.T) {
	a := assert.New(t)
	r, ms := newTestRouter(t)
	ms.EXPECT().Averages(gomock.Any()).Return([][]float64{{1.23456, 0}, {3, 1.5}}, nil)
	rec := doRequest(r, http.MethodGet, "/v1/stats/averages", "")
	a.Equal(http.StatusOK, rec.Code)
	a.JSONEq(`{"averages":[{"test":1,"subjects":[1.235,0]},{"test":2,"subjects":[3,1.5]}]}`, rec.Body.String())
}

func TestAPI_TopByColor(t *testing.T) {
	a := assert.New(t)
	r, ms := newTestRouter(t)
	// blue is the default color
	ms.EXPECT().TopByColor(gomock.Any(), 2, 1, gcolor.Blue, 0).Return([]int{3, 5}, nil)
	rec := doRequest(r, http.MethodGet, "/v1/stats/top/color?test=2&subject=1", "")
	a.Equal(http.StatusOK, rec.Code)
	a.JSONEq(`{"test":2,"subject":1,"color":"blue","participants":[3,5]}`, rec.Body.String())

	ms.EXPECT().TopByColor(gomock.Any(), 1, 1, gcolor.Red, 2).Return([]int{}, nil)
	rec = doRequest(r, http.MethodGet, "/v1/stats/top/color?test=1&subject=1&color=red&n=2", "")
	a.Equal(http.StatusOK, rec.Code)
	a.JSONEq(`{"test":1,"subject":1,"color":"red","participants":[]}`, rec.Body.String())

	rec = doRequest(r, http.MethodGet, "/v1/stats/top/color?test=1&subject=1&n=ten", "")
	a.Equal(http.StatusBadRequest, rec.Code)
}

func TestAPI_Rankings(t *testing.T) {
	a := assert.New(t)
	r, ms := newTestRouter(t)
	ms.EXPECT().TopInTest(gomock.Any(), 4, 2).Return([]Ranking{{Participant: 9, Score: 15}, {Participant: 1, Score: 14}}, nil)
	rec := doRequest(r, http.MethodGet, "/v1/stats/top/tests/4?n=2", "")
	a.Equal(http.StatusOK, rec.Code)
	a.JSONEq(`{"test":4,"rankings":[{"participant":9,"score":15},{"participant":1,"score":14}]}`, rec.Body.String())

	ms.EXPECT().TopOverall(gomock.Any(), 0).Return([]Ranking{{Participant: 2, Score: 150}}, nil)
	rec = doRequest(r, http.MethodGet, "/v1/stats/top/overall", "")
	a.Equal(http.StatusOK, rec.Code)
	a.JSONEq(`{"rankings":[{"participant":2,"score":150}]}`, rec.Body.String())
}

func TestAPI_Randomize(t *testing.T) {
	a := assert.New(t)
	r, ms := newTestRouter(t)
	ms.EXPECT().Randomize(gomock.Any(), int64(42)).Return(nil)
	rec := doRequest(r, http.MethodPost, "/v1/randomize?seed=42", "")
	a.Equal(http.StatusOK, rec.Code)
	a.JSONEq(`{"seed":42}`, rec.Body.String())

	rec = doRequest(r, http.MethodPost, "/v1/randomize?seed=abc", "")
	a.Equal(http.StatusBadRequest, rec.Code)
}

func TestAPI_Dimensions(t *testing.T) {
	a := assert.New(t)
	r, ms := newTestRouter(t)
	ms.EXPECT().Dimensions().Return(packedcolor.Dimensions{NumUsers: 100000, NumTests: 10, NumSubjects: 5})
	rec := doRequest(r, http.MethodGet, "/v1/dimensions", "")
	a.Equal(http.StatusOK, rec.Code)
	a.JSONEq(`{"num_users":100000,"num_tests":10,"num_subjects":5}`, rec.Body.String())
}

func TestAPI_MethodNotAllowed(t *testing.T) {
	a := assert.New(t)
	r, _ := newTestRouter(t)
	rec := doRequest(r, http.MethodDelete, "/v1/stats/averages", "")
	a.Equal(http.StatusMethodNotAllowed, rec.Code)
}

func TestAccessLog_RequestID(t *testing.T) {
	a := assert.New(t)
	var got string
	h := wrapHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RequestID(r.Context())
	}))
	rec := doRequest(h, http.MethodGet, "/", "")
	a.NotEmpty(got)
	a.Equal(got, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	a.Equal("abc", got)
	a.Equal("abc", rec.Header().Get(RequestIDHeader))
}
