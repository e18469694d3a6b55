package main

import (
	"fmt"
	stdio "io"
	"text/tabwriter"

	"github.com/paveg/tabula/internal/cell"
	"github.com/paveg/tabula/internal/series"
)

// runDemo prints how text is classified, how cells combine and how a mixed
// column settles on a kind.
func runDemo(w stdio.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "== Parsing text ==")
	fmt.Fprintln(tw, "INPUT\tKIND\tVALUE\t")
	for _, s := range []string{"42", "-7", "3.14", "true", "x", "hello", ""} {
		c := cell.FromText(s)
		fmt.Fprintf(tw, "%q\t%s\t%s\t\n", s, c.Kind(), c)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "== Arithmetic ==")
	fmt.Fprintln(tw, "LEFT\tOP\tRIGHT\tRESULT\tKIND\t")
	examples := []struct {
		left  cell.Cell
		op    string
		right cell.Cell
	}{
		{cell.OfInt(2), "+", cell.OfInt(3)},
		{cell.OfInt(-2), "*", cell.OfFloat(1.5)},
		{cell.OfUInt(7), "/", cell.OfUInt(2)},
		{cell.OfText("ab"), "+", cell.OfInt(1)},
		{cell.OfChar('z'), "*", cell.OfInt(3)},
		{cell.OfBool(true), "+", cell.OfBool(false)},
		{cell.OfFloat(1), "/", cell.OfFloat(0)},
		{cell.OfInt(1), "-", cell.NA()},
	}
	for _, ex := range examples {
		op, _ := cell.ParseOp(ex.op)
		result := ex.left.Apply(op, ex.right)
		fmt.Fprintf(tw, "%#v\t%s\t%#v\t%s\t%s\t\n", ex.left, op, ex.right, result, result.Kind())
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "== Typed columns ==")
	ages := series.FromValues("age", []int64{31, 45})
	for _, c := range []cell.Cell{cell.OfInt(28), cell.NA(), cell.OfText("unknown")} {
		if err := ages.Push(c); err != nil {
			fmt.Fprintf(tw, "push %#v\trejected: %v\t\n", c, err)
			continue
		}
		fmt.Fprintf(tw, "push %#v\tok, len %d\t\n", c, ages.Len())
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "== Mixed columns ==")
	raw := series.NewMixed("reading", []cell.Cell{
		cell.FromText("12"), cell.FromText("-3"), cell.NA(), cell.FromText("4.5"),
	})
	fmt.Fprintf(tw, "cells\t%v\t\n", raw.Cells())
	fmt.Fprintf(tw, "as text\t%s\t\n", raw.ToSeries().Kind())
	inferred := raw.Infer()
	fmt.Fprintf(tw, "inferred\t%s\t%v\t\n", inferred.Kind(), inferred.Cells())

	tw.Flush()
}
