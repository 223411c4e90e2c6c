// Package novacol is the top-level facade for the NovaCol dynamic column
// engine.
package novacol

import (
	"github.com/tuannm99/novacol/internal/column"
	"github.com/tuannm99/novacol/internal/engine"
	"github.com/tuannm99/novacol/internal/subcolumn"
	"github.com/tuannm99/novacol/internal/types"
)

type (
	Store      = engine.Store
	ColumnMeta = engine.ColumnMeta
	Dynamic    = column.Dynamic
	Resolved   = subcolumn.Resolved
)

// NewStore opens a column store rooted at dataDir.
func NewStore(dataDir string) *Store { return engine.NewStore(dataDir) }

// NewDynamic builds an in-memory dynamic column bounded to maxTypes
// distinct concrete types.
func NewDynamic(maxTypes int) (*Dynamic, error) { return column.NewDynamic(maxTypes) }

// Resolve materializes a virtual subcolumn of col (nil col resolves type
// and serialization metadata only).
func Resolve(path string, col *Dynamic, strict bool) (*Resolved, error) {
	return subcolumn.Resolve(path, types.NewRegistry(), col, strict)
}
