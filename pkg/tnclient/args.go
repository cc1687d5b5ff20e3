package tnclient

import (
	"errors"
	"fmt"

	"github.com/rickgao/tn-data/pkg/types"
)

// Procedure argument validation errors. All are raised locally, before any
// gateway call.
var (
	// ErrMixedArgTypes is returned when one argument column contains both
	// strings and numbers.
	ErrMixedArgTypes = errors.New("argument column mixes scalar types")

	// ErrUnsupportedArgType is returned for scalars that are neither strings
	// nor numbers.
	ErrUnsupportedArgType = errors.New("unsupported argument type")

	// ErrRaggedArgs is returned when argument rows have different lengths.
	ErrRaggedArgs = errors.New("argument rows have different lengths")
)

// buildColumns transposes a row-major argument matrix into typed columns.
// Each input row holds the positional values for one procedure call; the
// transposed column i groups the i-th value of every row. A column must be
// all strings or all numbers (ints are widened to float64); anything else
// is an error.
func buildColumns(rows [][]any) ([]types.ProcedureArg, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	width := len(rows[0])
	for _, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: want %d values, row has %d", ErrRaggedArgs, width, len(row))
		}
	}

	columns := make([]types.ProcedureArg, 0, width)
	for pos := 0; pos < width; pos++ {
		column := make([]any, len(rows))
		for i, row := range rows {
			column[i] = row[pos]
		}

		typed, err := typeColumn(column)
		if err != nil {
			return nil, fmt.Errorf("argument position %d: %w", pos, err)
		}
		columns = append(columns, typed)
	}

	return columns, nil
}

// typeColumn tags a column by the runtime type of its scalars.
func typeColumn(column []any) (types.ProcedureArg, error) {
	strings := make([]string, 0, len(column))
	floats := make([]float64, 0, len(column))

	for _, v := range column {
		switch s := v.(type) {
		case string:
			strings = append(strings, s)
		case float64:
			floats = append(floats, s)
		case float32:
			floats = append(floats, float64(s))
		case int:
			floats = append(floats, float64(s))
		case int32:
			floats = append(floats, float64(s))
		case int64:
			floats = append(floats, float64(s))
		default:
			return nil, fmt.Errorf("%w: %T", ErrUnsupportedArgType, v)
		}
	}

	switch {
	case len(strings) == len(column):
		return types.StringColumn(strings), nil
	case len(floats) == len(column):
		return types.FloatColumn(floats), nil
	default:
		return nil, ErrMixedArgTypes
	}
}
