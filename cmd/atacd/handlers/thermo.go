package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "github.com/atacflux/atacflux/pkg/api/types/errors"
	apithermo "github.com/atacflux/atacflux/pkg/api/types/thermo"
	"github.com/atacflux/atacflux/pkg/thermo"
)

// ThermoStatusHandler reports whether the thermo caches are on disk and
// loaded, with entry counts.
func ThermoStatusHandler(store *thermo.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")
		return c.JSON(http.StatusOK, store.Status())
	}
}

// ThermoCacheHandler serves the whole reaction thermodynamics cache.
func ThermoCacheHandler(store *thermo.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")
		return c.JSON(http.StatusOK, apithermo.CacheResponse{
			Reactions: store.Reactions(),
		})
	}
}

// ThermoReactionHandler serves the thermo cache entry of one reaction.
func ThermoReactionHandler(store *thermo.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")

		rxnID := c.Param("rxnId")
		entry, ok := store.Reaction(rxnID)
		if !ok {
			return apierr.NotFound(fmt.Sprintf("No thermo data for %s", rxnID))
		}
		return c.JSON(http.StatusOK, entry)
	}
}
