package domain

import (
	"fmt"
	"io"
	"strings"
)

const (
	ReportHeader    = "name, sellIn, quality"
	ReportSeparator = ", "
)

type ItemView struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	SellIn   int    `json:"sell_in"`
	Quality  int    `json:"quality"`
}

// Report is an immutable snapshot of an inventory after Day ticks.
type Report struct {
	Day   int        `json:"day"`
	Items []ItemView `json:"items"`
}

func (v ItemView) Line() string {
	return fmt.Sprintf("%s%s%d%s%d", v.Name, ReportSeparator, v.SellIn, ReportSeparator, v.Quality)
}

// String renders the header followed by one line per item, each newline-terminated.
func (r Report) String() string {
	var b strings.Builder
	_, _ = r.WriteTo(&b)
	return b.String()
}

func (r Report) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := io.WriteString(w, ReportHeader+"\n")
	total += int64(n)
	if err != nil {
		return total, err
	}
	for _, item := range r.Items {
		n, err = io.WriteString(w, item.Line()+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
