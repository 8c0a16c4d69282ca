// Package duck answers filter metadata queries over rendered rows held in an in-memory duckdb.
package duck

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/pkg/errors"

	nt "logan/entity"
	lt "logan/table"
)

// Option is one distinct value of a select column and how many rows carry it.
type Option struct {
	Value string
	Count int
}

// Duck holds one rendered table at a time.
// Column keys are stored under positional names so no key can collide with row_id or row_class.
type Duck struct {
	db     *sql.DB
	logger nt.Logger
	names  map[string]string // column key to sql column
}

func New(lgr nt.Logger) (dk *Duck, err error) {

	db, err := sql.Open("duckdb", "")
	if err != nil {
		err = errors.Wrapf(err, "failed to open memo duck")
		return
	}

	if lgr == nil {
		lgr = nt.NopLogger{}
	}

	dk = &Duck{
		db:     db,
		logger: lgr,
		names:  map[string]string{},
	}

	return
}

func (dk *Duck) Close() {
	dk.db.Close()
}

// Load replaces the held rows with those of a rendered table.
// Fragment rows are kept with null cells so counts of all rows stay honest.
func (dk *Duck) Load(ctx context.Context, tbl lt.Table) (err error) {

	keys := make([]string, 0, len(tbl.Header.Cells))
	names := map[string]string{}
	for _, cell := range tbl.Header.Cells {
		if _, ok := names[cell.Key]; ok {
			continue
		}
		names[cell.Key] = fmt.Sprintf("col_%d", len(keys))
		keys = append(keys, cell.Key)
	}

	err = createTable(ctx, dk.db, keys, names)
	if err != nil {
		return
	}

	err = insertRows(ctx, dk.db, keys, names, tbl.Rows)
	if err != nil {
		return
	}

	dk.names = names
	dk.logger.Info(ctx, "loaded rows", "rows", len(tbl.Rows), "columns", len(keys))
	return
}

// Options returns distinct values of a column with counts, in first-seen order.
func (dk *Duck) Options(ctx context.Context, key string) (options []Option, err error) {

	name, ok := dk.names[key]
	if !ok {
		err = errors.Errorf("unknown column %q", key)
		return
	}

	query := fmt.Sprintf(`
		SELECT %[1]s, COUNT(*)
		FROM records
		WHERE row_class != '%[2]s'
		GROUP BY %[1]s
		ORDER BY MIN(row_id)
	`, name, lt.TextClass)

	rows, err := dk.db.QueryContext(ctx, query)
	if err != nil {
		err = errors.Wrapf(err, "failed to query options for %s", key)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var value sql.NullString
		var opt Option
		if err = rows.Scan(&value, &opt.Count); err != nil {
			err = errors.Wrapf(err, "failed to scan option")
			return
		}
		opt.Value = value.String
		options = append(options, opt)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating options")
	return
}

// Count returns the number of rows passing filter.
func (dk *Duck) Count(ctx context.Context, filter nt.Filter) (count int, err error) {

	where, args, err := dk.buildFilterExpr(filter)
	if err != nil {
		return
	}
	if where != "" {
		where = "WHERE " + where
	}

	query := fmt.Sprintf("SELECT COUNT(*) FROM records %s", where)
	err = dk.db.QueryRowContext(ctx, query, args...).Scan(&count)
	err = errors.Wrapf(err, "failed to count rows")
	return
}

// Filters returns metadata for each visible column: options for select columns.
func (dk *Duck) Filters(ctx context.Context, columns []nt.Column) (metas []lt.FilterMeta, err error) {

	for _, col := range lt.Visible(columns) {
		meta := lt.FilterMeta{
			Key:   col.Key,
			Title: col.Title,
			Kind:  col.Filter,
		}

		_, loaded := dk.names[col.Key]
		if col.Filter == nt.Select && loaded {
			var options []Option
			options, err = dk.Options(ctx, col.Key)
			if err != nil {
				return
			}
			for _, opt := range options {
				meta.Options = append(meta.Options, opt.Value)
			}
		}

		metas = append(metas, meta)
	}

	return
}

// unexported

// buildFilterExpr recursively builds filter expression (without WHERE prefix)
func (dk *Duck) buildFilterExpr(f nt.Filter) (expr string, args []any, err error) {

	switch f.Op {
	case nt.Eq, nt.Contains:
		name, ok := dk.names[f.Field]
		if !ok {
			err = errors.Errorf("unknown column %q", f.Field)
			return
		}

		if f.Op == nt.Eq {
			expr = fmt.Sprintf("%s = ?", name)
			args = []any{fmt.Sprintf("%v", f.Value)}
			return
		}

		expr = fmt.Sprintf(`%s LIKE ? ESCAPE '\'`, name)
		args = []any{"%" + escapeLike(fmt.Sprintf("%v", f.Value)) + "%"}
		return

	case nt.And, nt.Or:
		joiner := " AND "
		if f.Op == nt.Or {
			joiner = " OR "
		}

		var clauses []string
		for _, child := range f.Children {
			var clause string
			var more []any
			clause, more, err = dk.buildFilterExpr(child)
			if err != nil {
				return
			}
			if clause != "" {
				clauses = append(clauses, clause)
				args = append(args, more...)
			}
		}

		if len(clauses) > 0 {
			expr = "(" + strings.Join(clauses, joiner) + ")"
		}
		return
	}

	err = errors.Errorf("unsupported filter op %d", f.Op)
	return
}

func createTable(ctx context.Context, db *sql.DB, keys []string, names map[string]string) (err error) {

	_, err = db.ExecContext(ctx, "DROP TABLE IF EXISTS records")
	if err != nil {
		err = errors.Wrapf(err, "failed to drop table")
		return
	}

	cols := []string{"row_id INTEGER PRIMARY KEY", "row_class VARCHAR NOT NULL"}
	for _, key := range keys {
		cols = append(cols, names[key]+" VARCHAR")
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf("CREATE TABLE records (%s)", strings.Join(cols, ", ")))
	err = errors.Wrapf(err, "failed to create table")
	return
}

func insertRows(ctx context.Context, db *sql.DB, keys []string, names map[string]string, rows []lt.Row) (err error) {

	cols := []string{"row_id", "row_class"}
	marks := []string{"?", "?"}
	for _, key := range keys {
		cols = append(cols, names[key])
		marks = append(marks, "?")
	}
	insert := fmt.Sprintf("INSERT INTO records (%s) VALUES (%s)",
		strings.Join(cols, ", "), strings.Join(marks, ", "))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		err = errors.Wrapf(err, "failed to begin")
		return
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		err = errors.Wrapf(err, "failed to prepare insert")
		return
	}
	defer stmt.Close()

	for i, row := range rows {
		_, err = stmt.ExecContext(ctx, rowArgs(i, keys, row)...)
		if err != nil {
			err = errors.Wrapf(err, "failed to insert row %d", i)
			return
		}
	}

	err = tx.Commit()
	err = errors.Wrapf(err, "failed to commit")
	return
}

func rowArgs(id int, keys []string, row lt.Row) []any {

	texts := map[string]string{}
	if row.Class != lt.TextClass {
		for _, cell := range row.Cells {
			texts[cell.Key] = cell.Text
		}
	}

	args := []any{id, row.Class}
	for _, key := range keys {
		text, ok := texts[key]
		if !ok {
			args = append(args, nil)
			continue
		}
		args = append(args, text)
	}

	return args
}

func escapeLike(text string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(text)
}
