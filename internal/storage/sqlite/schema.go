package sqlite

// Sequence names in the sequences table
const (
	seqPlayers = "players"
	seqMatches = "matches"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sequences (
		name  TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS players (
		id   INTEGER PRIMARY KEY,
		data TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS matches (
		id   INTEGER PRIMARY KEY,
		data TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS messages (
		seq       INTEGER PRIMARY KEY AUTOINCREMENT,
		player_id INTEGER NOT NULL,
		body      TEXT NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_messages_player ON messages(player_id, seq);`,
}
