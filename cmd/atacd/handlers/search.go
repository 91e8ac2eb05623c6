package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "github.com/atacflux/atacflux/pkg/api/types/errors"
	apigem "github.com/atacflux/atacflux/pkg/api/types/gem"
	"github.com/atacflux/atacflux/pkg/annotations"
	"github.com/atacflux/atacflux/pkg/gem"
	"github.com/atacflux/atacflux/pkg/pathway"
	"github.com/atacflux/atacflux/pkg/thermo"
)

// SearchLimit bounds search results when the client does not ask for a
// limit.
const SearchLimit = 20

// SearchReactionsHandler serves the constraint-builder reaction search.
func SearchReactionsHandler(reg *gem.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")

		q, err := searchQuery(c)
		if err != nil {
			return err
		}

		var resp apigem.ReactionSearchResult
		if err := reg.Read(func(v gem.View) error {
			resp = pathway.SearchReactions(v.Model, q)
			return nil
		}); err != nil {
			return asAPIError(err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// SearchMetabolitesHandler serves the constraint-builder metabolite
// search, ordered so exchangeable metabolites come first.
func SearchMetabolitesHandler(reg *gem.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")

		q, err := searchQuery(c)
		if err != nil {
			return err
		}

		var resp apigem.MetaboliteSearchResult
		if err := reg.Read(func(v gem.View) error {
			resp = pathway.SearchMetabolites(v.Model, q)
			return nil
		}); err != nil {
			return asAPIError(err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// SearchAnnotationsHandler resolves a database identifier (KEGG, ChEBI,
// MetaNetX, BiGG or a name) to metabolites and their exchange reactions.
func SearchAnnotationsHandler(reg *gem.Registry, store *thermo.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")

		query := c.QueryParam("q")
		if query == "" {
			return apierr.BadRequest("query parameter q is required", nil)
		}

		var resp apigem.AnnotationSearchResult
		if err := reg.Read(func(v gem.View) error {
			resp = annotations.FindExchangeByQuery(v.Model, store, query)
			return nil
		}); err != nil {
			return asAPIError(err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func searchQuery(c echo.Context) (pathway.SearchQuery, error) {
	limit, err := intParam(c, "limit", SearchLimit)
	if err != nil {
		return pathway.SearchQuery{}, err
	}
	return pathway.SearchQuery{
		Query:       c.QueryParam("q"),
		Compartment: c.QueryParam("compartment"),
		Limit:       limit,
	}, nil
}
