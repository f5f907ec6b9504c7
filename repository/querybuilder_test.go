package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryBuilder_HeadOnly(t *testing.T) {
	query, args := NewQueryBuilder("SELECT id FROM music_entity").Build()

	assert.Equal(t, "SELECT id FROM music_entity", query)
	assert.Empty(t, args)
}

func TestQueryBuilder_ArgsFollowFragmentOrder(t *testing.T) {
	query, args := NewQueryBuilder("SELECT id FROM music_entity").
		Where("status = ?", "approved").
		Where("type = ?", "Album").
		Where("genre_id = ?", 7).
		Build()

	assert.Equal(t,
		"SELECT id FROM music_entity WHERE status = ? AND type = ? AND genre_id = ?",
		query)
	assert.Equal(t, []any{"approved", "Album", 7}, args)
}

func TestQueryBuilder_OrderByArgsComeAfterWhereArgs(t *testing.T) {
	query, args := NewQueryBuilder("SELECT id, name FROM music_entity").
		Where("status = ?", "approved").
		Where("LOWER(name) LIKE LOWER(?)", "%beck%").
		OrderBy("CASE WHEN LOWER(name) LIKE LOWER(?) THEN 1 ELSE 2 END, views DESC", "%beck%").
		Limit(20).
		Build()

	assert.Equal(t,
		"SELECT id, name FROM music_entity"+
			" WHERE status = ? AND LOWER(name) LIKE LOWER(?)"+
			" ORDER BY CASE WHEN LOWER(name) LIKE LOWER(?) THEN 1 ELSE 2 END, views DESC"+
			" LIMIT ?",
		query)
	assert.Equal(t, []any{"approved", "%beck%", "%beck%", 20}, args)
}

func TestQueryBuilder_FragmentWithMultipleArgs(t *testing.T) {
	query, args := NewQueryBuilder("SELECT id FROM music_entity").
		Where("(name = ? OR description = ?)", "a", "b").
		Where("views > ?", 100).
		Build()

	assert.Equal(t,
		"SELECT id FROM music_entity WHERE (name = ? OR description = ?) AND views > ?",
		query)
	assert.Equal(t, []any{"a", "b", 100}, args)
}

func TestQueryBuilder_GroupByBetweenWhereAndOrder(t *testing.T) {
	query, args := NewQueryBuilder("SELECT type, COUNT(*) FROM music_entity").
		Where("status = ?", "approved").
		GroupBy("type").
		OrderBy("COUNT(*) DESC").
		Build()

	assert.Equal(t,
		"SELECT type, COUNT(*) FROM music_entity WHERE status = ? GROUP BY type ORDER BY COUNT(*) DESC",
		query)
	assert.Equal(t, []any{"approved"}, args)
}

func TestQueryBuilder_ZeroLimitOmitsClause(t *testing.T) {
	query, args := NewQueryBuilder("SELECT id FROM genre").
		OrderBy("name").
		Limit(0).
		Build()

	assert.Equal(t, "SELECT id FROM genre ORDER BY name", query)
	assert.Empty(t, args)
}
