package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	apiconstraints "github.com/atacflux/atacflux/pkg/api/types/constraints"
	apierr "github.com/atacflux/atacflux/pkg/api/types/errors"
	"github.com/atacflux/atacflux/pkg/constraints"
	"github.com/atacflux/atacflux/pkg/db"
	"github.com/atacflux/atacflux/pkg/gem"
	"github.com/atacflux/atacflux/pkg/utils/pointer"
)

// OptimizeHandler runs FBA: reset bounds, apply the enabled constraints,
// solve. The solution stays in the registry so flux queries can read it.
// onDone receives the solver status for metrics (nil is fine).
func OptimizeHandler(
	reg *gem.Registry,
	store db.ConstraintInterface,
	solve func(context.Context, *gem.Model) (*gem.Solution, error),
	onDone func(status string),
) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")
		ctx := c.Request().Context()

		cons, err := store.List(ctx)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		var reports map[string]apiconstraints.ApplyReport
		sol, err := reg.Optimize(
			ctx,
			func(m *gem.Model) error {
				reports = constraints.ApplyToModel(m, cons)
				return nil
			},
			solve,
		)
		if err != nil {
			return asAPIError(err)
		}

		resp := apiconstraints.OptimizeResult{
			Status:             string(sol.Status),
			ConstraintsApplied: reports,
		}
		if sol.Status == gem.StatusOptimal {
			resp.ObjectiveValue = pointer.Ref(sol.Objective)
		}

		if onDone != nil {
			onDone(string(sol.Status))
		}
		return c.JSON(http.StatusOK, resp)
	}
}
