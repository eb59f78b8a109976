package rulesheet

import (
	"bytes"
	"errors"
	"testing"

	errs "nxn_tictactoe/internal/errors"
	"nxn_tictactoe/internal/rules"
)

func TestRenderProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, rules.NewCatalog(), []int{1, 3, 7}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header: %q", buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestRenderRejectsBadSizes(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, nil, nil); !errors.Is(err, errs.ErrInvalidBoard) {
		t.Fatalf("no sizes: %v", err)
	}
	if err := Render(&buf, nil, []int{3, 0}); !errors.Is(err, errs.ErrInvalidBoard) {
		t.Fatalf("size 0: %v", err)
	}
}

func TestCaption(t *testing.T) {
	want := []string{"column 1", "column 2", "column 3", "row 1", "row 2", "row 3", "diagonal", "anti-diagonal"}
	for i, w := range want {
		if got := caption(3, i); got != w {
			t.Errorf("caption(3, %d) = %q, want %q", i, got, w)
		}
	}
}
