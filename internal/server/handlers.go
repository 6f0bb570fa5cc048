package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"

	"github.com/freegames-hub/freegames/internal/utils"
	"github.com/freegames-hub/freegames/pkg/aggregate"
	"github.com/freegames-hub/freegames/pkg/offers"
)

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSources(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Agg.Sources())
}

// handleOffers runs one aggregation. Query parameters: source and state
// (repeatable or comma separated), q, sort and limit.
func (s *Server) handleOffers(c echo.Context) error {
	sources, opts, err := parseQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	batch, err := s.Agg.Aggregate(c.Request().Context(), sources, opts)
	if err != nil {
		if errors.Is(err, offers.ErrInvalidOptions) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		s.log.Errorf("Aggregation failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "aggregation failed"})
	}
	return c.JSON(http.StatusOK, batch)
}

func parseQuery(c echo.Context) ([]offers.Source, aggregate.Options, error) {
	params := c.QueryParams()
	var opts aggregate.Options

	sources, err := aggregate.ParseSources(utils.SplitList(params["source"]...))
	if err != nil {
		return nil, opts, err
	}
	if opts.States, err = aggregate.ParseStates(utils.SplitList(params["state"]...)); err != nil {
		return nil, opts, err
	}
	if opts.SortBy, err = aggregate.ParseSort(c.QueryParam("sort")); err != nil {
		return nil, opts, err
	}
	opts.Search = c.QueryParam("q")

	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, opts, offers.InvalidOptions("limit %q is not a number", raw)
		}
		opts.Limit = limit
	}
	return sources, opts, nil
}
