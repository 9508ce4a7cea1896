package store

import (
	"fmt"
	"strings"
)

// likeEscaper 跳脫 LIKE 萬用字元，使搜尋字詞以字面比對
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// query 累積 WHERE 條件與位置參數
type query struct {
	where []string
	args  []any
}

// arg 加入參數並回傳對應的 $n 佔位符
func (q *query) arg(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

// addSearch 將 search 依空白切成多個字詞
// 每個字詞須命中 cols 其中之一 (OR)，所有字詞之間為 AND
func (q *query) addSearch(search string, cols ...string) {
	terms := strings.Fields(search)
	if len(terms) == 0 || len(cols) == 0 {
		return
	}
	groups := make([]string, 0, len(terms))
	for _, term := range terms {
		p := q.arg("%" + likeEscaper.Replace(term) + "%")
		ors := make([]string, len(cols))
		for i, c := range cols {
			ors[i] = fmt.Sprintf("%s ILIKE %s", c, p)
		}
		groups = append(groups, "("+strings.Join(ors, " OR ")+")")
	}
	q.where = append(q.where, strings.Join(groups, " AND "))
}

func (q *query) addEq(col string, v any) {
	q.where = append(q.where, fmt.Sprintf("%s = %s", col, q.arg(v)))
}

func (q *query) whereClause() string {
	if len(q.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.where, " AND ")
}

var userSortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"role":       "role",
	"address":    "address",
	"created_at": "created_at",
}

var storeSortColumns = map[string]string{
	"name":           "s.name",
	"email":          "s.email",
	"address":        "s.address",
	"average_rating": "average_rating",
	"created_at":     "s.created_at",
}

// orderBy 只接受白名單內的欄位與方向，任一不合法時整體退回 name ASC
func orderBy(sortBy, sortOrder string, allowed map[string]string) string {
	col, ok := allowed[sortBy]
	dir := strings.ToUpper(sortOrder)
	if !ok || (dir != "ASC" && dir != "DESC") {
		return fmt.Sprintf(" ORDER BY %s ASC", allowed["name"])
	}
	return fmt.Sprintf(" ORDER BY %s %s", col, dir)
}
