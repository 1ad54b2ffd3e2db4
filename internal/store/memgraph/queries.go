package memgraph

// Graph model:
//
//	(:Show {uuid, name, created_at})-[:HAS_SONG]->(:Song {title, position})
//	(:Song)-[:PERFORMED_BY {position}]->(:Dancer {show_id, name})
//
// Song.position is a per-show insertion counter; it fixes the listing order.
const (
	CountShowsByNameQuery = `
		MATCH (sh:Show {name: $name})
		RETURN count(sh) AS n
	`

	CreateShowQuery = `
		CREATE (sh:Show {uuid: $uuid, name: $name, created_at: $created_at})
		RETURN sh.uuid AS uuid
	`

	GetShowQuery = `
		MATCH (sh:Show {uuid: $uuid})
		RETURN sh.uuid AS uuid, sh.name AS name, sh.created_at AS created_at
	`

	ListShowsQuery = `
		MATCH (sh:Show)
		RETURN sh.uuid AS uuid, sh.name AS name, sh.created_at AS created_at
		ORDER BY sh.created_at, sh.name
	`

	CountSongsByTitleQuery = `
		MATCH (:Show {uuid: $show_id})-[:HAS_SONG]->(s:Song {title: $title})
		RETURN count(s) AS n
	`

	AddSongQuery = `
		MATCH (sh:Show {uuid: $show_id})
		OPTIONAL MATCH (sh)-[:HAS_SONG]->(existing:Song)
		WITH sh, coalesce(max(existing.position), -1) + 1 AS next
		CREATE (sh)-[:HAS_SONG]->(s:Song {title: $title, position: next})
		WITH s
		UNWIND range(0, size($dancers) - 1) AS i
		MERGE (d:Dancer {show_id: $show_id, name: $dancers[i]})
		CREATE (s)-[:PERFORMED_BY {position: i}]->(d)
		RETURN count(d) AS performances
	`

	DeleteSongQuery = `
		MATCH (:Show {uuid: $show_id})-[:HAS_SONG]->(s:Song {title: $title})
		WITH s, s.title AS title
		DETACH DELETE s
		RETURN count(title) AS deleted
	`

	ListSongsQuery = `
		MATCH (:Show {uuid: $show_id})-[:HAS_SONG]->(s:Song)
		OPTIONAL MATCH (s)-[p:PERFORMED_BY]->(d:Dancer)
		WITH s, p, d ORDER BY s.position, p.position
		WITH s, collect(d.name) AS dancers
		RETURN s.title AS title, dancers
		ORDER BY s.position
	`
)

var indexQueries = []string{
	"CREATE INDEX ON :Show(uuid);",
	"CREATE INDEX ON :Show(name);",
	"CREATE INDEX ON :Song(title);",
	"CREATE INDEX ON :Dancer(show_id);",
}
