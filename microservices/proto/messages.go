package proto

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	errs "nxn_tictactoe/internal/errors"
)

const (
	fieldBoard      = "board"
	fieldDifficulty = "difficultyLevel"
	fieldSymbol     = "symbol"
	fieldResult     = "result"
)

func NewMakeMoveRequest(grid [][]string, difficulty int, symbol string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldBoard:      gridToList(grid),
		fieldDifficulty: difficulty,
		fieldSymbol:     symbol,
	})
}

func ParseMakeMoveRequest(s *structpb.Struct) (grid [][]string, difficulty int, symbol string, err error) {
	if grid, err = boardField(s); err != nil {
		return nil, 0, "", err
	}
	if symbol, err = stringField(s, fieldSymbol); err != nil {
		return nil, 0, "", err
	}
	v, ok := s.GetFields()[fieldDifficulty]
	if !ok {
		return nil, 0, "", fmt.Errorf("%w: missing field %q", errs.ErrInvalidDifficulty, fieldDifficulty)
	}
	num, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || num.NumberValue != math.Trunc(num.NumberValue) {
		return nil, 0, "", fmt.Errorf("%w: field %q must be an integer", errs.ErrInvalidDifficulty, fieldDifficulty)
	}
	return grid, int(num.NumberValue), symbol, nil
}

func NewCheckWinnerRequest(grid [][]string, symbol string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldBoard:  gridToList(grid),
		fieldSymbol: symbol,
	})
}

func ParseCheckWinnerRequest(s *structpb.Struct) (grid [][]string, symbol string, err error) {
	if grid, err = boardField(s); err != nil {
		return nil, "", err
	}
	if symbol, err = stringField(s, fieldSymbol); err != nil {
		return nil, "", err
	}
	return grid, symbol, nil
}

func NewBoardResponse(grid [][]string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{fieldBoard: gridToList(grid)})
}

func ParseBoardResponse(s *structpb.Struct) ([][]string, error) {
	return boardField(s)
}

// NewCheckWinnerResponse encodes a nil result as a protobuf null.
func NewCheckWinnerResponse(result *bool) (*structpb.Struct, error) {
	var v any
	if result != nil {
		v = *result
	}
	return structpb.NewStruct(map[string]any{fieldResult: v})
}

func ParseCheckWinnerResponse(s *structpb.Struct) (*bool, error) {
	v, ok := s.GetFields()[fieldResult]
	if !ok {
		return nil, fmt.Errorf("missing field %q", fieldResult)
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_BoolValue:
		b := k.BoolValue
		return &b, nil
	default:
		return nil, fmt.Errorf("field %q must be a bool or null", fieldResult)
	}
}

func gridToList(grid [][]string) []any {
	rows := make([]any, len(grid))
	for r, row := range grid {
		cells := make([]any, len(row))
		for c, v := range row {
			cells[c] = v
		}
		rows[r] = cells
	}
	return rows
}

func boardField(s *structpb.Struct) ([][]string, error) {
	v, ok := s.GetFields()[fieldBoard]
	if !ok {
		return nil, fmt.Errorf("%w: missing field %q", errs.ErrInvalidBoard, fieldBoard)
	}
	rows := v.GetListValue()
	if rows == nil {
		return nil, fmt.Errorf("%w: field %q must be a list of rows", errs.ErrInvalidBoard, fieldBoard)
	}
	grid := make([][]string, len(rows.GetValues()))
	for r, rowValue := range rows.GetValues() {
		row := rowValue.GetListValue()
		if row == nil {
			return nil, fmt.Errorf("%w: board row %d must be a list", errs.ErrInvalidBoard, r)
		}
		grid[r] = make([]string, len(row.GetValues()))
		for c, cell := range row.GetValues() {
			str, ok := cell.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return nil, fmt.Errorf("%w: board cell %d,%d must be a string", errs.ErrInvalidBoard, r, c)
			}
			grid[r][c] = str.StringValue
		}
	}
	return grid, nil
}

func stringField(s *structpb.Struct, name string) (string, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return "", fmt.Errorf("%w: missing field %q", errs.ErrInvalidSymbol, name)
	}
	str, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: field %q must be a string", errs.ErrInvalidSymbol, name)
	}
	return str.StringValue, nil
}
