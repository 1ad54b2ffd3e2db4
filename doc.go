// Package setlist builds running orders for dance recitals in which as few
// consecutive songs as possible share a dancer.
//
// 🚀 What is setlist?
//
//	A small engine plus the plumbing around it:
//		• tagset   - sorted, duplicate-free dancer sets with merge intersection
//		• sequence - rotation multi-start greedy ordering, evaluation, ranking
//		• internal/showfile - YAML/TOML show files
//		• internal/store    - shows and songs in memory, SQLite or Memgraph
//		• internal/planner  - store → engine, parallel planning of many shows
//		• internal/report   - ranked setlists as JSON or terminal text
//		• internal/server   - HTTP API (gin)
//		• internal/cli      - the setlist command (cobra)
//
// ⚙️ Usage:
//
//	setlist generate recital.yaml --end Finale --top 3
//	setlist serve --addr :8080
//
// The engine packages (tagset, sequence) have no dependencies beyond the
// standard library and can be imported on their own.
package setlist
