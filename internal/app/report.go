package app

import (
	"strconv"

	"hotel_pricer/internal/domain"
)

// ReportBuilder accumulates a header-less, row-major price table.
type ReportBuilder struct {
	rows [][]string
	cur  []string
}

func NewReportBuilder() *ReportBuilder { return &ReportBuilder{} }

// StartRow closes the current row, if any, and opens a new one with the
// given leading columns.
func (b *ReportBuilder) StartRow(cols ...string) {
	b.flush()
	b.cur = append([]string{}, cols...)
}

// AddPrice appends the cell's price to the open row.
func (b *ReportBuilder) AddPrice(c domain.PriceCell) {
	b.cur = append(b.cur, strconv.Itoa(c.Price()))
}

// Rows returns every row built so far, including the open one.
func (b *ReportBuilder) Rows() [][]string {
	b.flush()
	return b.rows
}

func (b *ReportBuilder) flush() {
	if b.cur != nil {
		b.rows = append(b.rows, b.cur)
		b.cur = nil
	}
}
