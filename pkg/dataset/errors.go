package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoDataset is returned when a reference resolves to no record at all.
var ErrNoDataset = errors.New("dataset: no matching record")

// MultipleDatasetsError reports that a dataset reference resolved to more
// than one record. Loading works on exactly one dataset's distributions, so
// the caller must narrow the reference (or let a user pick interactively).
type MultipleDatasetsError struct {
	IDs []string
}

func (e *MultipleDatasetsError) Error() string {
	return fmt.Sprintf("dataset reference is ambiguous: matches %d records (%s)",
		len(e.IDs), strings.Join(e.IDs, ", "))
}
