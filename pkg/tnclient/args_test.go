package tnclient

import (
	"errors"
	"testing"

	"github.com/rickgao/tn-data/pkg/types"
)

func TestBuildColumns_TranspositionDirection(t *testing.T) {
	// Rows are per-call positional values; column i groups the i-th value
	// across calls.
	rows := [][]any{
		{"2024-01-01", 1.5, "usd"},
		{"2024-01-02", 2.5, "eur"},
		{"2024-01-03", 3.5, "gbp"},
	}

	columns, err := buildColumns(rows)
	if err != nil {
		t.Fatalf("buildColumns() error = %v", err)
	}
	if len(columns) != 3 {
		t.Fatalf("columns = %d, want 3", len(columns))
	}

	dates := columns[0].(types.StringColumn)
	if dates[0] != "2024-01-01" || dates[1] != "2024-01-02" || dates[2] != "2024-01-03" {
		t.Errorf("column 0 = %v, order not preserved", dates)
	}

	values := columns[1].(types.FloatColumn)
	if values[0] != 1.5 || values[1] != 2.5 || values[2] != 3.5 {
		t.Errorf("column 1 = %v, order not preserved", values)
	}

	currencies := columns[2].(types.StringColumn)
	if currencies[0] != "usd" || currencies[2] != "gbp" {
		t.Errorf("column 2 = %v, order not preserved", currencies)
	}
}

func TestBuildColumns_IntsWidenToFloat(t *testing.T) {
	rows := [][]any{
		{1, "a"},
		{2.5, "b"},
		{int64(3), "c"},
	}

	columns, err := buildColumns(rows)
	if err != nil {
		t.Fatalf("buildColumns() error = %v", err)
	}

	floats, ok := columns[0].(types.FloatColumn)
	if !ok {
		t.Fatalf("column 0 = %T, want FloatColumn", columns[0])
	}
	want := []float64{1, 2.5, 3}
	for i, w := range want {
		if floats[i] != w {
			t.Errorf("floats[%d] = %v, want %v", i, floats[i], w)
		}
	}
}

func TestBuildColumns_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]any
		want error
	}{
		{
			name: "mixed string and float column",
			rows: [][]any{{"a"}, {1.0}},
			want: ErrMixedArgTypes,
		},
		{
			name: "mixed float and string column",
			rows: [][]any{{1.0, "x"}, {"b", "y"}},
			want: ErrMixedArgTypes,
		},
		{
			name: "unsupported scalar type",
			rows: [][]any{{true}, {false}},
			want: ErrUnsupportedArgType,
		},
		{
			name: "ragged rows",
			rows: [][]any{{"a", "b"}, {"c"}},
			want: ErrRaggedArgs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildColumns(tt.rows)
			if !errors.Is(err, tt.want) {
				t.Errorf("buildColumns() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuildColumns_Empty(t *testing.T) {
	columns, err := buildColumns(nil)
	if err != nil {
		t.Fatalf("buildColumns(nil) error = %v", err)
	}
	if len(columns) != 0 {
		t.Errorf("columns = %d, want 0", len(columns))
	}
}

func TestBuildColumns_SingleRow(t *testing.T) {
	columns, err := buildColumns([][]any{{"only", 42.0}})
	if err != nil {
		t.Fatalf("buildColumns() error = %v", err)
	}
	if len(columns) != 2 {
		t.Fatalf("columns = %d, want 2", len(columns))
	}
	if s := columns[0].(types.StringColumn); s[0] != "only" {
		t.Errorf("column 0 = %v, want [only]", s)
	}
	if f := columns[1].(types.FloatColumn); f[0] != 42.0 {
		t.Errorf("column 1 = %v, want [42]", f)
	}
}
