package io

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/paveg/tabula/internal/cell"
	"github.com/paveg/tabula/internal/config"
	"github.com/paveg/tabula/internal/dataframe"
	dferrors "github.com/paveg/tabula/internal/errors"
	"github.com/paveg/tabula/internal/series"
)

// resolver turns parsed columns into strict series.
type resolver struct {
	op     string
	policy config.MixedPolicy
	kinds  map[string]cell.Kind
	logger *slog.Logger
}

func newResolver(op string, policy config.MixedPolicy, kinds map[string]cell.Kind, logger *slog.Logger) resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return resolver{op: op, policy: policy, kinds: kinds, logger: logger}
}

// frame resolves every column and assembles the DataFrame. Declared kinds
// must name existing columns.
func (r resolver) frame(names []string, columns [][]cell.Cell) (*dataframe.DataFrame, error) {
	for name := range r.kinds {
		if !slices.Contains(names, name) {
			return nil, dferrors.NewColumnNotFoundError(r.op, name).
				WithHint("a kind was declared for a column the input does not have")
		}
	}

	cols := make([]*series.Series, len(names))
	for i, name := range names {
		s, err := r.resolve(name, columns[i])
		if err != nil {
			return nil, err
		}
		cols[i] = s
	}
	return dataframe.New(cols...)
}

func (r resolver) resolve(name string, cells []cell.Cell) (*series.Series, error) {
	if kind, ok := r.kinds[name]; ok {
		s, err := series.FromMixed(series.NewMixed(name, cells), kind)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("converted column to declared kind", "op", r.op, "column", name, "kind", kind.String())
		return s, nil
	}

	if series.KindOf(cells) != cell.Mixed {
		return series.From(name, cells)
	}

	m := series.NewMixed(name, cells)
	var s *series.Series
	switch r.policy {
	case config.MixedFail:
		return nil, dferrors.NewMixedTypeError(r.op, name).
			WithHint("declare the column kind or read with the text or infer policy")
	case config.MixedAsText:
		s = m.ToSeries()
	case config.MixedInfer:
		s = m.Infer()
	default:
		return nil, dferrors.NewInvalidInputError(r.op, fmt.Sprintf("unknown mixed policy %q", r.policy))
	}

	r.logger.Debug("resolved mixed column",
		"op", r.op, "column", name, "policy", string(r.policy), "kind", s.Kind().String())
	return s, nil
}

// parseField turns one textual field into a cell. Null values become
// Missing; everything else goes through cell.FromText.
func parseField(field string, nulls []string, trim bool) cell.Cell {
	if trim {
		field = strings.TrimSpace(field)
	}
	if slices.Contains(nulls, field) {
		return cell.NA()
	}
	return cell.FromText(field)
}

// formatField renders a cell for textual output. Floats always carry a
// decimal point or an exponent so they parse back as floats.
func formatField(c cell.Cell, naToken string) string {
	switch c.Kind() {
	case cell.Missing:
		return naToken
	case cell.Float:
		f, _ := c.AsFloat()
		return formatFloat(f)
	default:
		return c.String()
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}
