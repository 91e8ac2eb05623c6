package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
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

func TestListReactionsHandler(t *testing.T) {

	t.Run("it pages through the model's reactions", func(t *testing.T) {
		reg := loadedRegistry(t)
		testee := handlers.ListReactionsHandler(reg)

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/reactions?limit=2&offset=1")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apigem.ReactionPage{}
		try.To(0, json.Unmarshal(respRec.Body.Bytes(), &actual)).OrFatal(t)

		if actual.Total != 5 || actual.Limit != 2 || actual.Offset != 1 {
			t.Errorf("unexpected page: total=%d limit=%d offset=%d", actual.Total, actual.Limit, actual.Offset)
		}
		actualIDs := utils.Map(actual.Reactions, func(r apigem.ReactionSummary) string { return r.ID })
		if !cmp.SliceEq(actualIDs, []string{"EX_o2", "GLCt"}) {
			t.Errorf("unexpected reactions: %v", actualIDs)
		}
	})

	t.Run("it filters by the text query", func(t *testing.T) {
		reg := loadedRegistry(t)
		testee := handlers.ListReactionsHandler(reg)

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/reactions?q=glucose")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apigem.ReactionPage{}
		try.To(0, json.Unmarshal(respRec.Body.Bytes(), &actual)).OrFatal(t)

		actualIDs := utils.Map(actual.Reactions, func(r apigem.ReactionSummary) string { return r.ID })
		if !cmp.SliceEq(actualIDs, []string{"EX_glc", "GLCt"}) {
			t.Errorf("unexpected reactions: %v", actualIDs)
		}
	})

	t.Run("when limit is not a number, status code should be 400", func(t *testing.T) {
		reg := loadedRegistry(t)
		testee := handlers.ListReactionsHandler(reg)

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/reactions?limit=ten")
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusBadRequest {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusBadRequest)
		}
	})

	t.Run("when no model is loaded, status code should be 503", func(t *testing.T) {
		testee := handlers.ListReactionsHandler(gem.NewRegistry())

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/reactions")
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

func TestGetReactionHandler(t *testing.T) {

	t.Run("it describes one reaction", func(t *testing.T) {
		reg := loadedRegistry(t)
		testee := handlers.GetReactionHandler(reg, emptyThermoStore(t))

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/reactions/GLYC")
		c.SetParamNames("rxnId")
		c.SetParamValues("GLYC")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apigem.ReactionDetail{}
		try.To(0, json.Unmarshal(respRec.Body.Bytes(), &actual)).OrFatal(t)

		if actual.ID != "GLYC" || actual.Subsystem != "Glycolysis" {
			t.Errorf("unexpected reaction: %+v", actual)
		}
		if len(actual.Substrates) != 1 || actual.Substrates[0].ID != "glc_c" {
			t.Errorf("unexpected substrates: %+v", actual.Substrates)
		}
		if len(actual.Products) != 1 || actual.Products[0].ID != "pyr_c" {
			t.Errorf("unexpected products: %+v", actual.Products)
		}
		if !cmp.SliceEq(actual.EC, []string{"2.7.1.2"}) {
			t.Errorf("unexpected ec numbers: %v", actual.EC)
		}
	})

	t.Run("when the reaction does not exist, status code should be 404", func(t *testing.T) {
		reg := loadedRegistry(t)
		testee := handlers.GetReactionHandler(reg, emptyThermoStore(t))

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/reactions/nope")
		c.SetParamNames("rxnId")
		c.SetParamValues("nope")
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusNotFound)
		}
	})
}

func TestGetMetaboliteHandler(t *testing.T) {

	t.Run("it describes one metabolite with its reactions", func(t *testing.T) {
		reg := loadedRegistry(t)
		testee := handlers.GetMetaboliteHandler(reg, emptyThermoStore(t))

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/metabolites/glc_c")
		c.SetParamNames("metId")
		c.SetParamValues("glc_c")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apigem.MetaboliteDetail{}
		try.To(0, json.Unmarshal(respRec.Body.Bytes(), &actual)).OrFatal(t)

		if actual.ID != "glc_c" || actual.CompartmentName != "cytoplasm" {
			t.Errorf("unexpected metabolite: %+v", actual)
		}
		producing := utils.Map(actual.Producing, func(r apigem.PathwayReaction) string { return r.ID })
		if !cmp.SliceEq(producing, []string{"GLCt"}) {
			t.Errorf("unexpected producing reactions: %v", producing)
		}
		consuming := utils.Map(actual.Consuming, func(r apigem.PathwayReaction) string { return r.ID })
		if !cmp.SliceEq(consuming, []string{"GLYC"}) {
			t.Errorf("unexpected consuming reactions: %v", consuming)
		}
	})

	t.Run("when the metabolite does not exist, status code should be 404", func(t *testing.T) {
		reg := loadedRegistry(t)
		testee := handlers.GetMetaboliteHandler(reg, emptyThermoStore(t))

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/metabolites/nope")
		c.SetParamNames("metId")
		c.SetParamValues("nope")
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusNotFound)
		}
	})
}

func TestSubsystemsHandler(t *testing.T) {

	t.Run("it lists subsystems with reaction ids", func(t *testing.T) {
		reg := loadedRegistry(t)
		testee := handlers.SubsystemsHandler(reg)

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/subsystems")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apigem.SubsystemList{}
		try.To(0, json.Unmarshal(respRec.Body.Bytes(), &actual)).OrFatal(t)

		expected := []apigem.Subsystem{
			{Name: "Exchange", Count: 2, Reactions: []string{"EX_glc", "EX_o2"}},
			{Name: "Glycolysis", Count: 1, Reactions: []string{"GLYC"}},
			{Name: "Transport", Count: 1, Reactions: []string{"GLCt"}},
			{Name: "Uncategorized", Count: 1, Reactions: []string{"EX_pyr"}},
		}
		if !cmp.SliceEqWith(actual.Subsystems, expected, apigem.Subsystem.Equal) {
			t.Errorf("unexpected subsystems:\n===actual===\n%+v\n===expected===\n%+v", actual.Subsystems, expected)
		}
	})
}

func TestSubsystemReactionsHandler(t *testing.T) {

	t.Run("it unescapes the subsystem name before looking it up", func(t *testing.T) {
		reg := loadedRegistry(t)
		testee := handlers.SubsystemReactionsHandler(reg, emptyThermoStore(t))

		e := echo.New()
		escaped := url.PathEscape("Glycolysis")
		c, respRec := httptestutil.Get(e, "/api/subsystems/"+escaped)
		c.SetParamNames("name")
		c.SetParamValues(escaped)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apigem.SubsystemDetail{}
		try.To(0, json.Unmarshal(respRec.Body.Bytes(), &actual)).OrFatal(t)

		if actual.Subsystem != "Glycolysis" {
			t.Errorf("unexpected subsystem: %s", actual.Subsystem)
		}
		actualIDs := utils.Map(actual.Reactions, func(r apigem.PathwayReaction) string { return r.ID })
		if !cmp.SliceEq(actualIDs, []string{"GLYC"}) {
			t.Errorf("unexpected reactions: %v", actualIDs)
		}
	})

	t.Run("when the subsystem does not exist, status code should be 404", func(t *testing.T) {
		reg := loadedRegistry(t)
		testee := handlers.SubsystemReactionsHandler(reg, emptyThermoStore(t))

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/subsystems/nope")
		c.SetParamNames("name")
		c.SetParamValues("nope")
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusNotFound)
		}
	})
}
