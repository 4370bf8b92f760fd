package utils

import (
	"time"

	"github.com/go-gota/gota/dataframe"
)

// IndexLayout is the timestamp format used for the Datetime index column.
// It sorts lexicographically in chronological order.
const IndexLayout = "2006-01-02 15:04:05"

func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// HasColumn reports whether the DataFrame has a column with the given name.
func HasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// ParseTime parses an index-column timestamp.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(IndexLayout, s)
}
