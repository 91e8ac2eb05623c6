package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	apierr "github.com/atacflux/atacflux/pkg/api/types/errors"
	apigem "github.com/atacflux/atacflux/pkg/api/types/gem"
	"github.com/atacflux/atacflux/pkg/gem"
	"github.com/atacflux/atacflux/pkg/pathway"
	"github.com/atacflux/atacflux/pkg/thermo"
)

// DefaultPageSize bounds reaction listings when the client does not ask
// for a limit.
const DefaultPageSize = 50

// ListReactionsHandler serves the paginated reaction listing with
// optional text query and nonzero-flux filter.
func ListReactionsHandler(reg *gem.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")

		q := pathway.ListQuery{Query: c.QueryParam("q"), Limit: DefaultPageSize}

		var err error
		if q.Limit, err = intParam(c, "limit", DefaultPageSize); err != nil {
			return err
		}
		if q.Offset, err = intParam(c, "offset", 0); err != nil {
			return err
		}
		switch c.QueryParam("nonzero_flux") {
		case "", "false", "0":
			// default
		default:
			q.NonzeroFlux = true
		}

		var resp apigem.ReactionPage
		if err := reg.Read(func(v gem.View) error {
			resp = pathway.ListReactions(v, q)
			return nil
		}); err != nil {
			return asAPIError(err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// GetReactionHandler serves one reaction with participants, thermo data
// and the last flux.
func GetReactionHandler(reg *gem.Registry, store *thermo.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")
		rxnID := c.Param("rxnId")

		var resp apigem.ReactionDetail
		if err := reg.Read(func(v gem.View) error {
			detail, ok := pathway.ReactionContext(v, store, rxnID)
			if !ok {
				return apierr.NotFound(fmt.Sprintf("reaction %s not found", rxnID))
			}
			resp = detail
			return nil
		}); err != nil {
			return asAPIError(err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// GetMetaboliteHandler serves one metabolite with its producing and
// consuming reactions.
func GetMetaboliteHandler(reg *gem.Registry, store *thermo.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")
		metID := c.Param("metId")

		var resp apigem.MetaboliteDetail
		if err := reg.Read(func(v gem.View) error {
			detail, ok := pathway.MetaboliteContext(v, store, metID)
			if !ok {
				return apierr.NotFound(fmt.Sprintf("metabolite %s not found", metID))
			}
			resp = detail
			return nil
		}); err != nil {
			return asAPIError(err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// SubsystemsHandler lists subsystems with their reaction ids.
func SubsystemsHandler(reg *gem.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")

		var resp apigem.SubsystemList
		if err := reg.Read(func(v gem.View) error {
			resp = pathway.Subsystems(v.Model)
			return nil
		}); err != nil {
			return asAPIError(err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// SubsystemReactionsHandler serves the reactions of one subsystem.
// Subsystem names contain spaces and slashes, so the path segment is
// unescaped before lookup.
func SubsystemReactionsHandler(reg *gem.Registry, store *thermo.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")

		name, err := url.PathUnescape(c.Param("name"))
		if err != nil {
			return apierr.BadRequest("can not unescape the subsystem name", err)
		}

		var resp apigem.SubsystemDetail
		if err := reg.Read(func(v gem.View) error {
			detail, ok := pathway.SubsystemReactions(v, store, name)
			if !ok {
				return apierr.NotFound(fmt.Sprintf("subsystem %s not found", name))
			}
			resp = detail
			return nil
		}); err != nil {
			return asAPIError(err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// intParam parses an optional non-negative integer query parameter.
func intParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apierr.BadRequest(
			fmt.Sprintf("query parameter %s should be a non-negative integer", name), err,
		)
	}
	return v, nil
}
