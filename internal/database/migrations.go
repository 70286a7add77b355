package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
var migrationsSQL = map[int]string{
	1: migrationV1Commemorations,
	2: migrationV2WeeklySchedule,
}

// migrationV1Commemorations creates the Synaxarium table.
//
// Several rows may share a (coptic_month, coptic_day); the id keeps the
// source order within a day.
const migrationV1Commemorations = `
CREATE TABLE IF NOT EXISTS commemorations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    coptic_month INTEGER NOT NULL CHECK (coptic_month BETWEEN 1 AND 13),
    coptic_day INTEGER NOT NULL CHECK (coptic_day BETWEEN 1 AND 30),
    month_name TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL,

    -- Normalized category: martyrdom, death, departure, commemoration, other
    category TEXT NOT NULL CHECK (category IN (
        'martyrdom',
        'death',
        'departure',
        'commemoration',
        'other'
    )),
    is_martyr INTEGER NOT NULL DEFAULT 0 CHECK (is_martyr IN (0, 1)),

    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_commemorations_date
    ON commemorations(coptic_month, coptic_day);
`

// migrationV2WeeklySchedule creates the weekly schedule table.
// weekday is the primary key: at most one recurring event per day.
const migrationV2WeeklySchedule = `
CREATE TABLE IF NOT EXISTS weekly_schedule (
    weekday INTEGER PRIMARY KEY CHECK (weekday BETWEEN 1 AND 7),
    time TEXT NOT NULL DEFAULT '',
    event TEXT NOT NULL DEFAULT '',
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`
