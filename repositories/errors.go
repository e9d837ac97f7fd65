package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrCategoryInUse blocks deletion of a category still referenced by posts.
	ErrCategoryInUse = errors.New("category is referenced by existing posts")
	// ErrInvalidCategory is returned when a post points at a category that does not exist.
	ErrInvalidCategory = errors.New("category does not exist")
)

// MySQL error numbers for foreign key violations.
const (
	mysqlErrRowIsReferenced = 1451 // cannot delete parent row
	mysqlErrNoReferencedRow = 1452 // cannot add or update child row
)

func isMySQLError(err error, number uint16) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == number
}
