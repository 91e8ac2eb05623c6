package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/atacflux/atacflux/cmd/atacd/handlers"
	httptestutil "github.com/atacflux/atacflux/internal/testutils/http"
	apigem "github.com/atacflux/atacflux/pkg/api/types/gem"
	"github.com/atacflux/atacflux/pkg/gem"
	"github.com/atacflux/atacflux/pkg/utils"
	"github.com/atacflux/atacflux/pkg/utils/cmp"
	"github.com/atacflux/atacflux/pkg/utils/try"
)

func TestSearchReactionsHandler(t *testing.T) {

	t.Run("it finds reactions by name", func(t *testing.T) {
		reg := loadedRegistry(t)
		testee := handlers.SearchReactionsHandler(reg)

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/search/reactions?q=exchange")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apigem.ReactionSearchResult{}
		try.To(0, json.Unmarshal(respRec.Body.Bytes(), &actual)).OrFatal(t)

		actualIDs := utils.Map(actual.Results, func(r apigem.ReactionHit) string { return r.ID })
		if !cmp.SliceEq(actualIDs, []string{"EX_glc", "EX_o2", "EX_pyr"}) {
			t.Errorf("unexpected results: %v", actualIDs)
		}
		for _, hit := range actual.Results {
			if !hit.IsExchange {
				t.Errorf("%s should be flagged as exchange", hit.ID)
			}
		}
	})

	t.Run("it honors the limit", func(t *testing.T) {
		reg := loadedRegistry(t)
		testee := handlers.SearchReactionsHandler(reg)

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/search/reactions?q=exchange&limit=1")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apigem.ReactionSearchResult{}
		try.To(0, json.Unmarshal(respRec.Body.Bytes(), &actual)).OrFatal(t)

		if len(actual.Results) != 1 {
			t.Errorf("unexpected results: %+v", actual.Results)
		}
	})

	t.Run("when no model is loaded, status code should be 503", func(t *testing.T) {
		testee := handlers.SearchReactionsHandler(gem.NewRegistry())

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/search/reactions?q=exchange")
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusServiceUnavailable {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusServiceUnavailable)
		}
	})
}

func TestSearchMetabolitesHandler(t *testing.T) {

	t.Run("it finds metabolites, exchangeable ones first", func(t *testing.T) {
		reg := loadedRegistry(t)
		testee := handlers.SearchMetabolitesHandler(reg)

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/search/metabolites?q=glucose")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apigem.MetaboliteSearchResult{}
		try.To(0, json.Unmarshal(respRec.Body.Bytes(), &actual)).OrFatal(t)

		actualIDs := utils.Map(actual.Results, func(m apigem.MetaboliteHit) string { return m.ID })
		// glc_e carries the exchange reaction and sorts first.
		if !cmp.SliceEq(actualIDs, []string{"glc_e", "glc_c"}) {
			t.Errorf("unexpected results: %v", actualIDs)
		}
		if actual.Results[0].Reactions[0].ID != "EX_glc" {
			t.Errorf("exchange should sort first within a metabolite: %+v", actual.Results[0].Reactions)
		}
	})

	t.Run("it filters by compartment", func(t *testing.T) {
		reg := loadedRegistry(t)
		testee := handlers.SearchMetabolitesHandler(reg)

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/search/metabolites?q=glucose&compartment=c")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apigem.MetaboliteSearchResult{}
		try.To(0, json.Unmarshal(respRec.Body.Bytes(), &actual)).OrFatal(t)

		actualIDs := utils.Map(actual.Results, func(m apigem.MetaboliteHit) string { return m.ID })
		if !cmp.SliceEq(actualIDs, []string{"glc_c"}) {
			t.Errorf("unexpected results: %v", actualIDs)
		}
	})
}

func TestSearchAnnotationsHandler(t *testing.T) {

	t.Run("it resolves a KEGG id to metabolites and exchanges", func(t *testing.T) {
		reg := loadedRegistry(t)
		testee := handlers.SearchAnnotationsHandler(reg, emptyThermoStore(t))

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/search/annotations?q=C00031")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apigem.AnnotationSearchResult{}
		try.To(0, json.Unmarshal(respRec.Body.Bytes(), &actual)).OrFatal(t)

		if actual.Query != "C00031" {
			t.Errorf("unexpected query: %s", actual.Query)
		}
		mets := utils.Map(actual.Metabolites, func(m apigem.MetaboliteSummary) string { return m.ID })
		if !cmp.SliceEq(mets, []string{"glc_e"}) {
			t.Errorf("unexpected metabolites: %v", mets)
		}
		exchanges := utils.Map(actual.Exchanges, func(x apigem.ExchangeSummary) string { return x.ID })
		if !cmp.SliceEq(exchanges, []string{"EX_glc"}) {
			t.Errorf("unexpected exchanges: %v", exchanges)
		}
	})

	t.Run("when q is missing, status code should be 400", func(t *testing.T) {
		reg := loadedRegistry(t)
		testee := handlers.SearchAnnotationsHandler(reg, emptyThermoStore(t))

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/search/annotations")
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusBadRequest {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusBadRequest)
		}
	})
}
