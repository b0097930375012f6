package postgres

import (
	"fmt"
	"strings"

	"auditor-srv/internal/lead/repository"
)

const leadColumns = "id, business_name, contact_email, score, status, metadata, created_at, updated_at"

// buildWhere renders the filter into a WHERE clause with positional args.
func buildWhere(filter repository.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.MinScore > 0 {
		args = append(args, filter.MinScore)
		conds = append(conds, fmt.Sprintf("score >= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func buildListQuery(opts repository.ListOptions) (string, []any) {
	where, args := buildWhere(opts.Filter)
	query := "SELECT " + leadColumns + " FROM leads" + where + " ORDER BY score DESC, created_at ASC"
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return query, args
}

func buildCountQuery(filter repository.Filter) (string, []any) {
	where, args := buildWhere(filter)
	return "SELECT COUNT(*) FROM leads" + where, args
}
