package repository

import (
	"fmt"
	"strings"
)

// DefaultPageSize is the article listing page size when none is requested
const DefaultPageSize = 10

// sortColumns is the closed allow-list of article sort keys. The mapped
// expressions are the only identifiers ever interpolated into query text;
// everything user-supplied is a bound parameter.
var sortColumns = map[string]string{
	"title":         "articles.title",
	"topic":         "articles.topic",
	"author":        "articles.author",
	"created_at":    "articles.created_at",
	"votes":         "articles.votes",
	"comment_count": "comment_count",
}

// ArticleListParams holds the query parameters for listing articles.
// Zero values fall back to defaults: created_at sort, descending order,
// page size DefaultPageSize, offset 0.
type ArticleListParams struct {
	SortBy string
	Order  string
	Topic  string
	Limit  int
	Offset int
}

// build constructs the parameterized article listing query. Every article
// carries a comment_count even with zero comments: a grouped subaggregate
// is left-joined and missing counts default to zero.
//
// An unrecognized SortBy value is silently ignored and the default sort
// applies; invalid sort requests degrade rather than error.
func (p ArticleListParams) build() (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT articles.article_id,
		       articles.title,
		       articles.topic,
		       articles.author,
		       articles.created_at,
		       articles.votes,
		       articles.article_img_url,
		       COALESCE(article_comment_counts.comment_count, 0) AS comment_count
		FROM articles
		LEFT JOIN (
		    SELECT article_id, COUNT(*)::INT AS comment_count
		    FROM comments
		    GROUP BY article_id
		) AS article_comment_counts
		ON article_comment_counts.article_id = articles.article_id`)

	args := make([]interface{}, 0, 3)

	if p.Topic != "" {
		args = append(args, p.Topic)
		fmt.Fprintf(&sb, "\nWHERE articles.topic = $%d", len(args))
	}

	sortExpr, ok := sortColumns[p.SortBy]
	if !ok {
		sortExpr = sortColumns["created_at"]
	}

	direction := "DESC"
	if strings.EqualFold(p.Order, "asc") {
		direction = "ASC"
	}

	fmt.Fprintf(&sb, "\nORDER BY %s %s", sortExpr, direction)

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}

	args = append(args, limit)
	fmt.Fprintf(&sb, "\nLIMIT $%d", len(args))
	args = append(args, offset)
	fmt.Fprintf(&sb, " OFFSET $%d", len(args))

	return sb.String(), args
}
